// Package database handles ledger database connections and schema checks.
//
// It wraps GORM to open postgres (the hosted ledger), mysql, or sqlite
// connections from the application's configuration. sqlite is mostly used by
// tests and local dry runs.
//
// # Connect
//
// Connect validates the configuration first, so a missing DATABASE_URL or
// host/name pair is reported as a configuration error before any network
// traffic.
//
// # Schema Inspection
//
// RequireColumns verifies that the staging and lookup tables expose the
// columns the sync writes and reads. It runs before the staging area is
// cleared so a schema drift never leaves the staging table empty.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	err = database.RequireColumns(db, "inventory_lots_staging", []string{"card_id"})
package database
