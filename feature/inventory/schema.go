package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"card-ledger/core/csvio"
	"card-ledger/core/normalize"

	"github.com/shopspring/decimal"
)

// Schema versions of the inventory CSV.
const (
	SchemaV1 = "v1"
	SchemaV2 = "v2"
)

// DefaultCurrency is used when the currency cell is blank.
const DefaultCurrency = "J"

var v1Columns = []string{
	"card_code", "acquisition_type", "source_name", "acquired_qty", "unit_cost", "currency", "note",
}

var v2Extra = []string{"expansion", "rarity", "print_hint", "acquired_at"}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Columns returns the required columns of a schema version.
func Columns(schema string) ([]string, error) {
	switch schema {
	case SchemaV1:
		return append([]string(nil), v1Columns...), nil
	case SchemaV2:
		return append(append([]string(nil), v1Columns...), v2Extra...), nil
	default:
		return nil, fmt.Errorf("unknown inventory schema %q", schema)
	}
}

// ParseResult holds the outcome of row validation.
type ParseResult struct {
	Rows     []LotInput
	Rejected []Rejection
	// Skipped counts rows with a blank card code.
	Skipped int
}

// ParseRows validates each row independently. now fills a blank acquired_at.
func ParseRows(table *csvio.Table, schema string, now time.Time) ParseResult {
	var res ParseResult
	for _, row := range table.Rows {
		code := normalize.CardCode(row.Get("card_code"))
		if code == "" {
			res.Skipped++
			continue
		}

		in, field, err := parseRow(row, schema, code, now)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{
				Line:     row.Line,
				CardCode: code,
				Stage:    StageValidation,
				Field:    field,
				Reason:   err.Error(),
			})
			continue
		}
		res.Rows = append(res.Rows, in)
	}
	return res
}

func parseRow(row csvio.Row, schema, code string, now time.Time) (LotInput, string, error) {
	in := LotInput{
		Line:            row.Line,
		CardCode:        code,
		AcquisitionType: row.Get("acquisition_type"),
		SourceName:      row.Get("source_name"),
		Note:            row.Get("note"),
		AcquiredAt:      now,
	}

	qty, err := strconv.Atoi(row.Get("acquired_qty"))
	if err != nil {
		return in, "acquired_qty", fmt.Errorf("acquired_qty is not an integer: %q", row.Get("acquired_qty"))
	}
	if qty < 0 {
		return in, "acquired_qty", fmt.Errorf("acquired_qty must not be negative: %d", qty)
	}
	in.AcquiredQty = qty

	cost, err := decimal.NewFromString(row.Get("unit_cost"))
	if err != nil {
		return in, "unit_cost", fmt.Errorf("unit_cost is not a number: %q", row.Get("unit_cost"))
	}
	in.UnitCost = cost

	in.Currency = DefaultCurrency
	if c := row.Get("currency"); c != "" {
		r, _ := utf8.DecodeRuneInString(c)
		in.Currency = string(r)
	}

	if schema != SchemaV2 {
		return in, "", nil
	}

	if exp, ok := normalize.Expansion(row.Get("expansion")); ok {
		in.Expansion = exp
	}
	in.Rarity = normalize.Rarity(row.Get("rarity"))
	in.PrintHint = row.Get("print_hint")

	if raw := row.Get("acquired_at"); raw != "" {
		at, err := parseTime(raw)
		if err != nil {
			return in, "acquired_at", err
		}
		in.AcquiredAt = at
	}
	return in, "", nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("acquired_at is not a timestamp: %q", strings.TrimSpace(raw))
}
