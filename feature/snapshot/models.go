package snapshot

import (
	"time"

	"card-ledger/feature/inventory"
)

// RowsResponse is the body of the cards and prices routes.
type RowsResponse struct {
	Expansion string              `json:"expansion"`
	Count     int                 `json:"count"`
	ModTime   time.Time           `json:"mod_time"`
	Rows      []map[string]string `json:"rows"`
}

// PortfolioResponse is the body of the portfolio route.
type PortfolioResponse struct {
	Count int                  `json:"count"`
	Rows  []inventory.Position `json:"rows"`
}

// RunsResponse lists the archived run dates of an expansion, newest first.
type RunsResponse struct {
	Expansion string   `json:"expansion"`
	Runs      []string `json:"runs"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
