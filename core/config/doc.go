// Package config provides configuration management for the card ledger tools.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Crawler: expansion selector, crawl targets, pacing and HTTP retry settings
//   - Sync: inventory CSV, schema version, backend and staging table
//   - Database: ledger database connection (postgres, mysql, sqlite)
//   - Ledger: REST endpoint of the hosted ledger
//   - Storage: S3/MinIO settings for snapshot uploads
//   - Server: snapshot HTTP server settings
//   - Log: Logging level and format
//
// Variables from the older scripts (HOCG_EXPANSIONS, SUPABASE_DB_URL,
// SUPABASE_URL, SUPABASE_KEY) are honored when the canonical ones are unset.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	for _, exp := range cfg.Crawler.ExpansionList() {
//	    ...
//	}
package config
