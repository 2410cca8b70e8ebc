package inventory

import (
	"strconv"
	"strings"

	"card-ledger/core/csvio"
)

// UnresolvedHeader is the column order of the needs-resolution report.
var UnresolvedHeader = []string{
	"line", "expansion", "card_code", "rarity", "print_hint", "acquired_qty", "unit_cost", "reason", "candidates",
}

// WriteUnresolved writes rows needing a manual print choice. Candidates are
// rendered as id:rarity[:hint] separated by " / ".
func WriteUnresolved(path string, rows []Unresolved) error {
	records := make([][]string, 0, len(rows))
	for _, u := range rows {
		cands := make([]string, 0, len(u.Candidates))
		for _, c := range u.Candidates {
			s := strconv.FormatInt(c.ID, 10) + ":" + c.RarityCode
			if c.PrintHint != "" {
				s += ":" + c.PrintHint
			}
			cands = append(cands, s)
		}
		records = append(records, []string{
			strconv.Itoa(u.Input.Line),
			u.Input.Expansion,
			u.Input.CardCode,
			u.Input.Rarity,
			u.Input.PrintHint,
			strconv.Itoa(u.Input.AcquiredQty),
			u.Input.UnitCost.String(),
			u.Reason,
			strings.Join(cands, " / "),
		})
	}
	return csvio.WriteFile(path, UnresolvedHeader, records)
}
