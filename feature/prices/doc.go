// Package prices reconciles marketplace sell and buy listings per card code.
//
// For every card code of an expansion the Service fetches the sell-side and
// buy-side search pages, parses the matching listings and merges them into
// one Row per (rarity, parallel-name) key. A card code always yields at least
// one row: when nothing matched, a suspicious placeholder carries the reason.
//
// Transport failures never abort the run. They become the diagnostic message
// of the affected rows.
package prices
