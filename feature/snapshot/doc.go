// Package snapshot serves the latest crawl outputs over HTTP.
//
// Store reads the cards and prices CSV files from the data directory and
// keeps parsed copies in an LRU cache keyed by path and modification time,
// so a rewritten file is picked up on the next request. Concurrent loads of
// the same file share one read.
//
// Routes (mounted under /api):
//
//	GET /api/cards/:expansion
//	GET /api/prices/:expansion?suspicious=1
//	GET /api/portfolio            (only with a REST ledger)
//	GET /api/runs/:expansion      (only with storage enabled)
package snapshot
