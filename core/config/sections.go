package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"card-ledger/core/normalize"
	"card-ledger/core/transport"
)

var (
	// ErrNoExpansions is returned when the selector yields no expansion code.
	ErrNoExpansions = errors.New("no expansion selected: set CRAWLER_EXPANSIONS")
	// ErrMissingLedger is returned when the REST backend lacks its endpoint or key.
	ErrMissingLedger = errors.New("ledger url and api key are required: set LEDGER_URL and LEDGER_API_KEY")
)

// Sync backends.
const (
	BackendDatabase = "database"
	BackendREST     = "rest"
)

// Inventory input schema versions.
const (
	SchemaV1 = "v1"
	SchemaV2 = "v2"
)

// Crawler holds the dataset selector and crawl targets.
type Crawler struct {
	// Expansions is the comma-separated list of expansion codes to process.
	Expansions string `mapstructure:"expansions" default:"HBP01"`
	// OutputDir receives the CSV outputs and holds the card lists read by the price crawl.
	OutputDir string `mapstructure:"output_dir" default:"data"`
	// CardsBaseURL is the official card list site.
	CardsBaseURL string `mapstructure:"cards_base_url" default:"https://hololive-official-cardgame.com"`
	// MarketBaseURL is the marketplace queried for sell and buy prices.
	MarketBaseURL string `mapstructure:"market_base_url" default:"https://yuyu-tei.jp"`
	// PageDelayMs is the pause between search result pages.
	PageDelayMs int `mapstructure:"page_delay_ms" default:"500"`
	// DetailDelayMs is the pause between card detail pages.
	DetailDelayMs int `mapstructure:"detail_delay_ms" default:"200"`
	// MarketDelayMs is the pause between marketplace searches.
	MarketDelayMs int `mapstructure:"market_delay_ms" default:"1200"`
	// HTTP holds timeout, identification and retry settings.
	HTTP transport.Config `mapstructure:"http"`
}

// ExpansionList returns the canonical, de-duplicated expansion codes.
func (c Crawler) ExpansionList() []string {
	return normalize.ExpansionList(c.Expansions)
}

// PageDelay is the pause between search result pages.
func (c Crawler) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

// DetailDelay is the pause between card detail pages.
func (c Crawler) DetailDelay() time.Duration {
	return time.Duration(c.DetailDelayMs) * time.Millisecond
}

// MarketDelay is the pause between marketplace searches.
func (c Crawler) MarketDelay() time.Duration {
	return time.Duration(c.MarketDelayMs) * time.Millisecond
}

// Validate checks that at least one expansion is selected and delays are sane.
func (c Crawler) Validate() error {
	if len(c.ExpansionList()) == 0 {
		return ErrNoExpansions
	}
	if c.PageDelayMs < 0 || c.DetailDelayMs < 0 || c.MarketDelayMs < 0 {
		return fmt.Errorf("crawler delays must not be negative")
	}
	return nil
}

// Sync holds the inventory staging settings.
type Sync struct {
	// Input is the inventory CSV to stage.
	Input string `mapstructure:"input" default:"data/inventory.csv"`
	// Schema is the input column set, v1 or v2.
	Schema string `mapstructure:"schema" default:"v2"`
	// Backend selects the ledger access path, database or rest.
	Backend string `mapstructure:"backend" default:"database"`
	// StagingTable is the table fully replaced on each run.
	StagingTable string `mapstructure:"staging_table" default:"inventory_lots_staging"`
	// UnresolvedOutput receives rows whose print variant could not be resolved. Empty disables it.
	UnresolvedOutput string `mapstructure:"unresolved_output" default:"data/inventory_needs_resolution.csv"`
	// BatchSize bounds rows per insert statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
}

// Validate checks the schema and backend names.
func (s Sync) Validate() error {
	switch s.Schema {
	case SchemaV1, SchemaV2:
	default:
		return fmt.Errorf("unknown inventory schema %q (want v1 or v2)", s.Schema)
	}
	switch s.Backend {
	case BackendDatabase, BackendREST:
	default:
		return fmt.Errorf("unknown sync backend %q (want database or rest)", s.Backend)
	}
	if s.StagingTable == "" {
		return fmt.Errorf("sync staging table must be set")
	}
	if filepath.Ext(s.Input) == "" {
		return fmt.Errorf("sync input %q does not look like a file", s.Input)
	}
	return nil
}

// Ledger holds the PostgREST-style endpoint of the hosted ledger.
type Ledger struct {
	// URL is the project base URL; /rest/v1 is appended.
	URL string `mapstructure:"url" default:""`
	// APIKey is sent as apikey and Bearer token.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that the endpoint and key are set.
func (l Ledger) Validate() error {
	if l.URL == "" || l.APIKey == "" {
		return ErrMissingLedger
	}
	return nil
}

// ValidateSync checks everything the sync command needs before any work.
func (c *Config) ValidateSync() error {
	if err := c.Sync.Validate(); err != nil {
		return err
	}
	if c.Sync.Backend == BackendREST {
		return c.Ledger.Validate()
	}
	return c.Database.Validate()
}
