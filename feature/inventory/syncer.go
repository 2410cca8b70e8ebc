package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"card-ledger/core/csvio"
	"card-ledger/core/metrics"

	"go.uber.org/zap"
)

// Summary counts a sync plan.
type Summary struct {
	Read       int `json:"read"`
	Skipped    int `json:"skipped"`
	Accepted   int `json:"accepted"`
	Rejected   int `json:"rejected"`
	Unresolved int `json:"unresolved"`
}

// Plan is everything a sync would write, computed without side effects.
type Plan struct {
	Schema     string       `json:"schema"`
	Accepted   []StagedLot  `json:"-"`
	Rejected   []Rejection  `json:"rejected"`
	Unresolved []Unresolved `json:"-"`
	Summary    Summary      `json:"summary"`
}

// Options control Apply.
type Options struct {
	DryRun    bool
	Confirmed bool
}

// ApplyResult reports what Apply changed.
type ApplyResult struct {
	Applied  bool  `json:"applied"`
	Cleared  int64 `json:"cleared"`
	Inserted int   `json:"inserted"`
}

// Syncer plans and applies the staging replacement.
type Syncer struct {
	ledger  Ledger
	schema  string
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSyncer creates a syncer for one CSV schema version.
func NewSyncer(ledger Ledger, schema string, logger *zap.Logger, m *metrics.Metrics) *Syncer {
	return &Syncer{ledger: ledger, schema: schema, logger: logger, metrics: m, now: time.Now}
}

// PlanFile reads the CSV at path and plans the sync.
func (s *Syncer) PlanFile(ctx context.Context, path string) (*Plan, error) {
	required, err := Columns(s.schema)
	if err != nil {
		return nil, err
	}
	table, err := csvio.ReadFile(path, required)
	if err != nil {
		return nil, err
	}
	return s.Plan(ctx, table)
}

// Plan validates rows and resolves identifiers with batched ledger reads.
// It returns an error only when the ledger itself fails.
func (s *Syncer) Plan(ctx context.Context, table *csvio.Table) (*Plan, error) {
	parsed := ParseRows(table, s.schema, s.now().UTC())
	plan := &Plan{
		Schema:   s.schema,
		Rejected: parsed.Rejected,
	}
	plan.Summary.Read = len(table.Rows)
	plan.Summary.Skipped = parsed.Skipped

	codes := distinctCodes(parsed.Rows)
	cardIDs, err := s.ledger.LookupCards(ctx, codes)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Resolved card codes", zap.Int("requested", len(codes)), zap.Int("found", len(cardIDs)))

	var prints map[int64][]CardPrint
	if s.schema == SchemaV2 {
		ids := make([]int64, 0, len(cardIDs))
		for _, id := range cardIDs {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		prints, err = s.ledger.LookupPrints(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	for _, in := range parsed.Rows {
		cardID, ok := cardIDs[in.CardCode]
		if !ok {
			plan.Rejected = append(plan.Rejected, Rejection{
				Line:     in.Line,
				CardCode: in.CardCode,
				Stage:    StageUnknownCard,
				Field:    "card_code",
				Reason:   fmt.Sprintf("card_code %s not found in ledger", in.CardCode),
			})
			continue
		}

		lot := toLot(in, cardID)
		if s.schema == SchemaV2 {
			variants := prints[cardID]
			printID, reason := ResolvePrint(variants, in.Rarity, in.PrintHint)
			if printID == nil {
				plan.Unresolved = append(plan.Unresolved, Unresolved{Input: in, Reason: reason, Candidates: variants})
				plan.Rejected = append(plan.Rejected, Rejection{
					Line:     in.Line,
					CardCode: in.CardCode,
					Stage:    StageUnresolved,
					Field:    "rarity",
					Reason:   reason,
				})
				continue
			}
			lot.CardPrintID = printID
		}
		plan.Accepted = append(plan.Accepted, lot)
	}

	sort.SliceStable(plan.Rejected, func(i, j int) bool { return plan.Rejected[i].Line < plan.Rejected[j].Line })
	plan.Summary.Accepted = len(plan.Accepted)
	plan.Summary.Rejected = len(plan.Rejected)
	plan.Summary.Unresolved = len(plan.Unresolved)

	s.metrics.AddStaged("rejected", plan.Summary.Rejected-plan.Summary.Unresolved)
	s.metrics.AddStaged("unresolved", plan.Summary.Unresolved)
	s.metrics.AddStaged("skipped", plan.Summary.Skipped)
	return plan, nil
}

// Apply replaces the staging table with the plan's accepted rows. Nothing is
// written unless opts.Confirmed is set and opts.DryRun is not. The staging
// table is cleared even when no rows were accepted.
func (s *Syncer) Apply(ctx context.Context, plan *Plan, opts Options) (ApplyResult, error) {
	var res ApplyResult
	if opts.DryRun || !opts.Confirmed {
		s.logger.Info("Staging write skipped",
			zap.Bool("dry_run", opts.DryRun),
			zap.Bool("confirmed", opts.Confirmed),
			zap.Int("accepted", len(plan.Accepted)))
		return res, nil
	}

	if r, ok := s.ledger.(Replacer); ok {
		cleared, err := r.ReplaceStaging(ctx, plan.Accepted)
		if err != nil {
			return res, err
		}
		res.Cleared = cleared
	} else {
		cleared, err := s.ledger.ClearStaging(ctx)
		if err != nil {
			return res, err
		}
		res.Cleared = cleared
		if err := s.ledger.InsertStaging(ctx, plan.Accepted); err != nil {
			return res, err
		}
	}

	res.Applied = true
	res.Inserted = len(plan.Accepted)
	s.metrics.AddStaged("accepted", res.Inserted)
	s.logger.Info("Staging table replaced", zap.Int64("cleared", res.Cleared), zap.Int("inserted", res.Inserted))
	return res, nil
}

// ResolvePrint picks the print variant for a rarity and print hint. A card
// with exactly one variant resolves to it when nothing matches.
func ResolvePrint(variants []CardPrint, rarity, hint string) (*int64, string) {
	var matches []CardPrint
	for _, v := range variants {
		if !strings.EqualFold(v.RarityCode, rarity) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(v.PrintHint), strings.TrimSpace(hint)) {
			continue
		}
		matches = append(matches, v)
	}

	switch {
	case len(matches) == 1:
		id := matches[0].ID
		return &id, ""
	case len(matches) > 1:
		return nil, fmt.Sprintf("%d print variants match rarity %q and print_hint %q", len(matches), rarity, hint)
	case len(variants) == 1:
		id := variants[0].ID
		return &id, ""
	case len(variants) == 0:
		return nil, "card has no print variants"
	default:
		return nil, fmt.Sprintf("no print variant matches rarity %q and print_hint %q", rarity, hint)
	}
}

func toLot(in LotInput, cardID int64) StagedLot {
	return StagedLot{
		Expansion:       in.Expansion,
		CardCode:        in.CardCode,
		Rarity:          in.Rarity,
		PrintHint:       in.PrintHint,
		CardID:          cardID,
		AcquisitionType: in.AcquisitionType,
		SourceName:      in.SourceName,
		AcquiredQty:     in.AcquiredQty,
		UnitCost:        in.UnitCost,
		Currency:        in.Currency,
		AcquiredAt:      in.AcquiredAt,
		Note:            in.Note,
	}
}

func distinctCodes(rows []LotInput) []string {
	seen := make(map[string]struct{}, len(rows))
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.CardCode]; ok {
			continue
		}
		seen[r.CardCode] = struct{}{}
		codes = append(codes, r.CardCode)
	}
	sort.Strings(codes)
	return codes
}
