package prices

import (
	"strings"

	"card-ledger/core/reconcile"
)

const (
	// MsgBuyAboveSell flags a row whose buy price exceeds its sell price.
	MsgBuyAboveSell = "buy_price_jpy > sell_price_jpy, manual review required"
	// MsgNoMatch is the placeholder reason when no listing matched the code.
	MsgNoMatch = "no card-product matched on search page"
	// errJoin separates sell-side and buy-side transport errors.
	errJoin = " | "
)

func compareKeys(a, b Key) int {
	if c := strings.Compare(a.Rarity, b.Rarity); c != 0 {
		return c
	}
	switch {
	case a.Parallel == b.Parallel:
		return 0
	case !a.Parallel:
		return -1
	default:
		return 1
	}
}

func score(l Listing) int64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// TransportError combines the side errors into one diagnostic, or "" when
// both sides loaded.
func TransportError(sellErr, buyErr error) string {
	var parts []string
	if sellErr != nil {
		parts = append(parts, "sell search error: "+sellErr.Error())
	}
	if buyErr != nil {
		parts = append(parts, "buy search error: "+buyErr.Error())
	}
	return strings.Join(parts, errJoin)
}

// Reconcile merges both sides into one row per (rarity, parallel) key,
// ordered by rarity then parallel flag. Each side keeps its highest priced
// listing per key; a missing price counts as 0 for that choice only.
// transportErr, when set, becomes the message of every row.
func Reconcile(cardCode string, sell, buy []Listing, transportErr string) []Row {
	sellByKey := reconcile.KeepMax(sell, KeyOf, score)
	buyByKey := reconcile.KeepMax(buy, KeyOf, score)

	pairs := reconcile.Join(sellByKey, buyByKey, compareKeys)
	if len(pairs) == 0 {
		msg := transportErr
		if msg == "" {
			msg = MsgNoMatch
		}
		return []Row{Placeholder(cardCode, msg)}
	}

	rows := make([]Row, 0, len(pairs))
	for _, p := range pairs {
		row := Row{
			CardCode:       cardCode,
			Rarity:         ptr(p.Key.Rarity),
			IsParallelName: p.Key.Parallel,
		}
		if transportErr != "" {
			row.ErrorMessage = ptr(transportErr)
		}

		if s := p.Left; s != nil {
			row.SellPrice = s.Price
			row.RawSellText = s.RawPriceText
			row.SellURL = s.URL
		}
		if b := p.Right; b != nil {
			row.BuyPrice = b.Price
			row.RawBuyText = b.RawPriceText
			row.BuyURL = b.URL
		}
		row.Name = mergedName(p.Left, p.Right)

		if row.SellPrice != nil && row.BuyPrice != nil && *row.BuyPrice > *row.SellPrice {
			row.IsSuspicious = true
			if row.ErrorMessage == nil {
				row.ErrorMessage = ptr(MsgBuyAboveSell)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Placeholder is the single row emitted for a card code without usable listings.
func Placeholder(cardCode, msg string) Row {
	return Row{
		CardCode:     cardCode,
		IsSuspicious: true,
		ErrorMessage: ptr(msg),
	}
}

func mergedName(sell, buy *Listing) *string {
	if sell != nil && sell.Name != nil && *sell.Name != "" {
		return sell.Name
	}
	if buy != nil {
		return buy.Name
	}
	return nil
}
