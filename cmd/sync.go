package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"card-ledger/core/config"
	"card-ledger/core/database"
	"card-ledger/core/metrics"
	"card-ledger/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncInput  string
	syncDryRun bool
	yesConfirm bool
)

// syncCmd is the parent command for ledger sync operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync local CSV data into the ledger",
}

var syncInventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Replace the staging table with the rows of the inventory CSV",
	Long: `Validates every row of the inventory CSV, resolves card codes and print
variants against the ledger, reports rejected rows, then clears the staging
table and inserts the accepted rows.

Rows whose print variant cannot be resolved are written to
SYNC_UNRESOLVED_OUTPUT for manual review.

Examples:
  # Report only
  card-ledger sync inventory --dry-run

  # Replace staging with interactive confirmation
  card-ledger sync inventory

  # Non-interactive
  card-ledger sync inventory --input data/inventory.csv --yes`,
	RunE: runSyncInventory,
}

func init() {
	syncInventoryCmd.Flags().StringVar(&syncInput, "input", "", "Inventory CSV (defaults to SYNC_INPUT)")
	syncInventoryCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan and report only, never write")
	syncInventoryCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the staging replacement (non-interactive)")

	syncCmd.AddCommand(syncInventoryCmd)
	RootCmd.AddCommand(syncCmd)
}

func runSyncInventory(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	if syncInput != "" {
		cfg.Sync.Input = syncInput
	}
	if err := cfg.ValidateSync(); err != nil {
		return err
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}

	l.Info("Starting inventory sync",
		zap.String("input", cfg.Sync.Input),
		zap.String("schema", cfg.Sync.Schema),
		zap.String("backend", cfg.Sync.Backend),
		zap.String("table", cfg.Sync.StagingTable))

	syncer := inventory.NewSyncer(ledger, cfg.Sync.Schema, l, metrics.New())

	// Step 1: Plan (always runs)
	plan, err := syncer.PlanFile(ctx, cfg.Sync.Input)
	if err != nil {
		return fmt.Errorf("failed to plan sync: %w", err)
	}

	// Step 2: Report
	printSyncReport(l, plan)
	if len(plan.Unresolved) > 0 && cfg.Sync.UnresolvedOutput != "" {
		if err := inventory.WriteUnresolved(cfg.Sync.UnresolvedOutput, plan.Unresolved); err != nil {
			return fmt.Errorf("failed to write unresolved rows: %w", err)
		}
		l.Warn("Rows need manual print resolution",
			zap.Int("count", len(plan.Unresolved)),
			zap.String("path", cfg.Sync.UnresolvedOutput))
	}

	// Step 3: Apply (if confirmed)
	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	opts := inventory.Options{Confirmed: confirmDestructiveAction(cfg.Sync.StagingTable)}
	if !opts.Confirmed {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := syncer.Apply(ctx, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply sync: %w", err)
	}
	l.Info("Inventory staged", zap.Int64("cleared", res.Cleared), zap.Int("inserted", res.Inserted))
	return nil
}

func openLedger(cfg *config.Config) (inventory.Ledger, error) {
	if cfg.Sync.Backend == config.BackendREST {
		timeout := time.Duration(cfg.Ledger.TimeoutSeconds) * time.Second
		return inventory.NewRESTLedger(cfg.Ledger.URL, cfg.Ledger.APIKey, cfg.Sync.StagingTable, timeout), nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RequireColumns(db, cfg.Sync.StagingTable, inventory.StagingColumns); err != nil {
		return nil, err
	}
	return inventory.NewGormLedger(db, cfg.Sync.StagingTable, cfg.Sync.BatchSize), nil
}

// printSyncReport logs the plan summary and a sample of rejected rows.
func printSyncReport(l *zap.Logger, plan *inventory.Plan) {
	s := plan.Summary
	l.Info("Sync report",
		zap.Int("read", s.Read),
		zap.Int("skipped", s.Skipped),
		zap.Int("accepted", s.Accepted),
		zap.Int("rejected", s.Rejected),
		zap.Int("unresolved", s.Unresolved),
	)

	maxShow := min(10, len(plan.Rejected))
	for _, r := range plan.Rejected[:maxShow] {
		l.Warn("Rejected row",
			zap.Int("line", r.Line),
			zap.String("card_code", r.CardCode),
			zap.String("stage", r.Stage),
			zap.String("reason", r.Reason),
		)
	}
	if len(plan.Rejected) > maxShow {
		l.Info("Additional rejected rows not shown", zap.Int("count", len(plan.Rejected)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(table string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  All rows of %s will be replaced. Type 'yes' to confirm: ", table)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
