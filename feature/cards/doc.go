// Package cards crawls the official card list for one expansion.
//
// A Collector walks the paginated search endpoint and gathers card detail
// URLs into a SeenSet until a page fails, is empty, or repeats only links
// already seen. An Extractor turns each detail page into a Record, where
// every field degrades to an empty value on missing markup. Service ties
// both together and writes <expansion>_cards_v2.csv.
//
// Requests are strictly sequential; the SeenSet is owned by a single
// Collect call and is not safe for concurrent use.
package cards
