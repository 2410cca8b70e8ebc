package main

import "card-ledger/cmd"

func main() {
	cmd.Execute()
}
