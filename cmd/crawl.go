package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"card-ledger/core/config"
	"card-ledger/core/metrics"
	"card-ledger/core/storage"
	"card-ledger/core/transport"
	"card-ledger/feature/cards"
	"card-ledger/feature/export"
	"card-ledger/feature/prices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	crawlMetricsAddr string
	crawlReviewXLSX  bool
)

// crawlCmd is the parent command for the crawlers.
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl card metadata or marketplace prices",
	Long: `Crawl the official card list or the marketplace for every expansion in
CRAWLER_EXPANSIONS. Outputs are written to CRAWLER_OUTPUT_DIR and uploaded to
object storage when STORAGE_ENABLED is true.`,
}

var crawlCardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Crawl card metadata into <expansion>_cards_v2.csv",
	Long: `Walks the paginated search results of each expansion, fetches every card
detail page and writes one CSV per expansion. Failed detail pages are skipped.

Examples:
  CRAWLER_EXPANSIONS=hBP01,hSD01 card-ledger crawl cards
  card-ledger crawl cards --metrics-addr :9090`,
	RunE: runCrawlCards,
}

var crawlPricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Crawl sell and buy prices into <expansion>_yuyutei_prices.csv",
	Long: `Reads the card codes of each expansion from its cards CSV, searches the
marketplace sell and buy pages for every code and writes reconciled price rows.
Rows whose buy price exceeds the sell price are flagged as suspicious.

Examples:
  card-ledger crawl prices
  card-ledger crawl prices --review-xlsx`,
	RunE: runCrawlPrices,
}

func init() {
	crawlCmd.PersistentFlags().StringVar(&crawlMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address during the run (e.g. :9090)")
	crawlPricesCmd.Flags().BoolVar(&crawlReviewXLSX, "review-xlsx", false, "Also write suspicious rows to <expansion>_price_review.xlsx")

	crawlCmd.AddCommand(crawlCardsCmd)
	crawlCmd.AddCommand(crawlPricesCmd)
	RootCmd.AddCommand(crawlCmd)
}

// crawlRun holds what every crawl subcommand needs.
type crawlRun struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	uploader *export.Uploader
}

func newCrawlRun() (*crawlRun, error) {
	cfg, l, err := bootstrap()
	if err != nil {
		return nil, err
	}
	if err := cfg.Crawler.Validate(); err != nil {
		return nil, err
	}

	run := &crawlRun{cfg: cfg, logger: l, metrics: metrics.New()}
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		run.uploader = export.NewUploader(client, cfg.Storage, l)
	}
	return run, nil
}

// upload publishes run outputs. Failures are logged, the CSVs stay on disk.
func (r *crawlRun) upload(ctx context.Context, expansion string, files ...string) {
	if r.uploader == nil {
		return
	}
	if _, err := r.uploader.UploadRun(ctx, expansion, files...); err != nil {
		r.logger.Error("Upload failed", zap.String("expansion", expansion), zap.Error(err))
	}
}

func runCrawlCards(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	run, err := newCrawlRun()
	if err != nil {
		return err
	}
	defer run.logger.Sync()
	stop := serveMetrics(crawlMetricsAddr, run.metrics, run.logger)
	defer stop()

	c := run.cfg.Crawler
	client := transport.New(c.HTTP, "cards", run.logger, transport.WithMetrics(run.metrics))
	collector, err := cards.NewCollector(client.Paced(c.PageDelay()), c.CardsBaseURL, run.logger)
	if err != nil {
		return err
	}
	extractor, err := cards.NewExtractor(client.Paced(c.DetailDelay()), c.CardsBaseURL)
	if err != nil {
		return err
	}
	svc := cards.NewService(collector, extractor, c.OutputDir, run.logger, run.metrics)

	for _, exp := range c.ExpansionList() {
		res, err := svc.Run(ctx, exp)
		if err != nil {
			return fmt.Errorf("crawl cards %s: %w", exp, err)
		}
		run.logger.Info("Cards crawl finished",
			zap.String("expansion", exp),
			zap.String("path", res.Path),
			zap.Int("pages", res.Pages),
			zap.String("stop_reason", string(res.StopReason)),
			zap.Int("written", res.Written),
			zap.Int("skipped", res.Skipped),
		)
		run.upload(ctx, exp, res.Path)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

func runCrawlPrices(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	run, err := newCrawlRun()
	if err != nil {
		return err
	}
	defer run.logger.Sync()
	stop := serveMetrics(crawlMetricsAddr, run.metrics, run.logger)
	defer stop()

	c := run.cfg.Crawler
	client := transport.New(c.HTTP, "market", run.logger,
		transport.WithMetrics(run.metrics),
		transport.WithDelay(c.MarketDelay()))
	svc := prices.NewService(client, c.MarketBaseURL, c.OutputDir, run.logger, run.metrics)

	for _, exp := range c.ExpansionList() {
		res, err := svc.Run(ctx, exp)
		if errors.Is(err, prices.ErrNoCardList) {
			run.logger.Warn("No cards CSV for expansion, run crawl cards first", zap.String("expansion", exp))
			continue
		}
		if err != nil {
			return fmt.Errorf("crawl prices %s: %w", exp, err)
		}

		files := []string{res.Path}
		if crawlReviewXLSX && len(res.Review) > 0 {
			review := filepath.Join(c.OutputDir, exp+"_price_review.xlsx")
			if err := export.WriteReviewWorkbook(review, res.Review); err != nil {
				return fmt.Errorf("write review workbook: %w", err)
			}
			run.logger.Info("Review workbook written", zap.String("path", review), zap.Int("rows", len(res.Review)))
			files = append(files, review)
		}
		run.upload(ctx, exp, files...)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}
