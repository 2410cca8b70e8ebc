package cards

import (
	"context"
	"fmt"
	"path/filepath"

	"card-ledger/core/csvio"
	"card-ledger/core/metrics"

	"go.uber.org/zap"
)

// RunResult summarizes one expansion crawl.
type RunResult struct {
	Expansion  string     `json:"expansion"`
	Path       string     `json:"path"`
	Pages      int        `json:"pages"`
	StopReason StopReason `json:"stop_reason"`
	Collected  int        `json:"collected"`
	Written    int        `json:"written"`
	Skipped    int        `json:"skipped"`
}

// Service crawls one expansion and writes its cards CSV.
type Service struct {
	collector *Collector
	extractor *Extractor
	outDir    string
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewService creates a cards service writing into outDir.
func NewService(collector *Collector, extractor *Extractor, outDir string, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		collector: collector,
		extractor: extractor,
		outDir:    outDir,
		logger:    logger,
		metrics:   m,
	}
}

// OutputPath is where the cards CSV of an expansion is written.
func OutputPath(outDir, expansion string) string {
	return filepath.Join(outDir, expansion+"_cards_v2.csv")
}

// Run collects detail URLs, extracts each page and writes the CSV. A detail
// page that fails is logged and skipped. Only output errors are returned.
func (s *Service) Run(ctx context.Context, expansion string) (*RunResult, error) {
	s.logger.Info("Collecting card URLs", zap.String("expansion", expansion))
	collected := s.collector.Collect(ctx, expansion)

	res := &RunResult{
		Expansion:  expansion,
		Path:       OutputPath(s.outDir, expansion),
		Pages:      collected.Pages,
		StopReason: collected.StopReason,
		Collected:  len(collected.URLs),
	}
	s.logger.Info("Collected card URLs",
		zap.String("expansion", expansion),
		zap.Int("urls", res.Collected),
		zap.Int("pages", res.Pages),
		zap.String("stop_reason", string(res.StopReason)))

	w, err := csvio.Create(res.Path, Header)
	if err != nil {
		return nil, fmt.Errorf("open cards output: %w", err)
	}

	for i, pageURL := range collected.URLs {
		if ctx.Err() != nil {
			break
		}

		rec, err := s.extractor.Fetch(ctx, pageURL, expansion)
		if err != nil {
			res.Skipped++
			s.logger.Warn("Skipping card detail",
				zap.String("url", pageURL),
				zap.Int("index", i+1),
				zap.Int("total", res.Collected),
				zap.Error(err))
			continue
		}

		if err := w.Write(rec.Row()); err != nil {
			w.Close()
			return nil, err
		}
		res.Written++
		s.metrics.IncCards()
		s.logger.Debug("Extracted card",
			zap.String("card_code", rec.CardCode),
			zap.Int("index", i+1),
			zap.Int("total", res.Collected))
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close cards output: %w", err)
	}

	s.logger.Info("Cards written",
		zap.String("expansion", expansion),
		zap.String("path", res.Path),
		zap.Int("written", res.Written),
		zap.Int("skipped", res.Skipped))
	return res, nil
}
