// Package inventory stages acquisition rows from a CSV file into the ledger.
//
// A sync run reads the inventory CSV, validates each row on its own,
// resolves card codes (and, for the v2 schema, print variants) through a
// Ledger in batched lookups, and then replaces the whole staging table:
// clear first, insert the accepted rows in one bulk write.
//
// # Planning and applying
//
// Syncer.Plan does all reads and produces a Plan with the accepted lots and
// the rejected rows with their reasons. Syncer.Apply writes the plan only
// when Options.Confirmed is set and Options.DryRun is not.
//
// # Backends
//
//   - GormLedger talks to postgres, mysql or sqlite through GORM.
//   - RESTLedger talks to a PostgREST endpoint (the hosted ledger API).
//
// Bad rows never abort the batch; a missing required column aborts before
// any row is read.
package inventory
