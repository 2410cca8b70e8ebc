package prices

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"card-ledger/core/csvio"
	"card-ledger/core/metrics"
	"card-ledger/core/transport"

	"go.uber.org/zap"
)

// ErrNoCardList is returned when no cards CSV exists for an expansion.
var ErrNoCardList = errors.New("no cards csv found")

// RunResult summarizes one expansion price crawl.
type RunResult struct {
	Expansion  string `json:"expansion"`
	Source     string `json:"source"`
	Path       string `json:"path"`
	Codes      int    `json:"codes"`
	Rows       int    `json:"rows"`
	Suspicious int    `json:"suspicious"`
	Failed     int    `json:"failed"`
	// Review holds the suspicious rows for manual follow-up.
	Review []Row `json:"-"`
}

// Service fetches, reconciles and writes marketplace prices.
type Service struct {
	fetcher    transport.Fetcher
	marketBase string
	dataDir    string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService creates a price service. dataDir holds the cards CSV inputs and
// receives the prices CSV.
func NewService(fetcher transport.Fetcher, marketBase, dataDir string, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		fetcher:    fetcher,
		marketBase: strings.TrimRight(marketBase, "/"),
		dataDir:    dataDir,
		logger:     logger,
		metrics:    m,
	}
}

// OutputPath is where the prices CSV of an expansion is written.
func OutputPath(dataDir, expansion string) string {
	return filepath.Join(dataDir, expansion+"_yuyutei_prices.csv")
}

// searchURL is the marketplace search page for one side.
func (s *Service) searchURL(side Side) string {
	return s.marketBase + "/" + string(side) + "/hocg/s/search"
}

// CardListCandidates are the file names tried for an expansion's card codes, in order.
func CardListCandidates(dataDir, expansion string) []string {
	upper := strings.ToUpper(expansion)
	return []string{
		filepath.Join(dataDir, expansion+"_cards_v2.csv"),
		filepath.Join(dataDir, upper+"_cards_v2.csv"),
		filepath.Join(dataDir, expansion+"_cards.csv"),
		filepath.Join(dataDir, upper+"_cards.csv"),
	}
}

// LoadCardCodes reads the first existing cards CSV and returns its distinct,
// sorted card codes from the card_code column, or code as a fallback.
func LoadCardCodes(dataDir, expansion string) ([]string, string, error) {
	var source string
	for _, p := range CardListCandidates(dataDir, expansion) {
		if _, err := os.Stat(p); err == nil {
			source = p
			break
		}
	}
	if source == "" {
		return nil, "", fmt.Errorf("%w for %s in %s", ErrNoCardList, expansion, dataDir)
	}

	table, err := csvio.ReadFile(source, nil)
	if err != nil {
		return nil, source, err
	}
	if !table.HasColumn("card_code") && !table.HasColumn("code") {
		return nil, source, &csvio.MissingColumnsError{Source: source, Columns: []string{"card_code"}}
	}

	seen := make(map[string]struct{})
	var codes []string
	for _, row := range table.Rows {
		code := row.Get("card_code")
		if code == "" {
			code = row.Get("code")
		}
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, source, nil
}

// FetchCode searches both sides for one card code and reconciles them.
// Side failures are folded into the rows' diagnostic message.
func (s *Service) FetchCode(ctx context.Context, cardCode string) []Row {
	sell, sellErr := s.listings(ctx, cardCode, Sell)
	buy, buyErr := s.listings(ctx, cardCode, Buy)
	return Reconcile(cardCode, sell, buy, TransportError(sellErr, buyErr))
}

func (s *Service) listings(ctx context.Context, cardCode string, side Side) ([]Listing, error) {
	doc, err := s.fetcher.Fetch(ctx, s.searchURL(side), url.Values{"search_word": {cardCode}})
	if err != nil {
		s.logger.Warn("Market search failed",
			zap.String("card_code", cardCode),
			zap.String("side", string(side)),
			zap.Error(err))
		return nil, err
	}
	return ParseListings(doc, cardCode, side, s.marketBase), nil
}

// fetchSafe isolates one card code: a panic while parsing becomes a fatal placeholder.
func (s *Service) fetchSafe(ctx context.Context, cardCode string) (rows []Row) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Card code failed", zap.String("card_code", cardCode), zap.Any("panic", r))
			rows = []Row{Placeholder(cardCode, fmt.Sprintf("fatal: %v", r))}
		}
	}()
	return s.FetchCode(ctx, cardCode)
}

// Run reconciles every card code of an expansion and writes the prices CSV.
func (s *Service) Run(ctx context.Context, expansion string) (*RunResult, error) {
	codes, source, err := LoadCardCodes(s.dataDir, expansion)
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		Expansion: expansion,
		Source:    source,
		Path:      OutputPath(s.dataDir, expansion),
		Codes:     len(codes),
	}
	s.logger.Info("Loaded card codes",
		zap.String("expansion", expansion),
		zap.String("source", source),
		zap.Int("codes", res.Codes))

	w, err := csvio.Create(res.Path, Header)
	if err != nil {
		return nil, fmt.Errorf("open prices output: %w", err)
	}

	for i, code := range codes {
		if ctx.Err() != nil {
			break
		}

		rows := s.fetchSafe(ctx, code)
		for _, row := range rows {
			if err := w.Write(row.Record()); err != nil {
				w.Close()
				return nil, err
			}
			res.Rows++
			s.metrics.IncPriceRow(row.IsSuspicious)
			if row.IsSuspicious {
				res.Suspicious++
				res.Review = append(res.Review, row)
			}
			if row.Rarity == nil {
				res.Failed++
			}
		}
		s.logger.Debug("Reconciled card code",
			zap.String("card_code", code),
			zap.Int("index", i+1),
			zap.Int("total", res.Codes),
			zap.Int("rows", len(rows)))
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close prices output: %w", err)
	}

	s.logger.Info("Prices written",
		zap.String("expansion", expansion),
		zap.String("path", res.Path),
		zap.Int("rows", res.Rows),
		zap.Int("suspicious", res.Suspicious),
		zap.Int("unmatched", res.Failed))
	return res, nil
}
