// Package reconcile provides the generic machinery for merging two
// independently collected, keyed sources into one ordered result.
//
// # Architecture
//
// Reconciliation runs in three steps:
//
//  1. KeepMax groups one source by key and keeps a single representative per
//     key, the one with the highest score. Ties keep the first seen item.
//
//  2. UnionKeys builds the union of keys present on either side and orders it
//     with a caller-supplied comparison, so output is stable across runs.
//
//  3. Join walks the ordered union and pairs whichever sides exist for each
//     key.
//
// Domain rules (naming, anomaly flags, placeholders) live with the caller;
// see feature/prices.
//
// # Usage Example
//
//	sell := reconcile.KeepMax(sellListings, listingKey, listingScore)
//	buy := reconcile.KeepMax(buyListings, listingKey, listingScore)
//	for _, pair := range reconcile.Join(sell, buy, compareKeys) {
//	    // pair.Left / pair.Right are nil when the side has no row
//	}
package reconcile
