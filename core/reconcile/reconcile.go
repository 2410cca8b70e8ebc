package reconcile

import "slices"

// Pair holds the item from each side for one key. A nil side is absent.
type Pair[K comparable, L, R any] struct {
	Key   K
	Left  *L
	Right *R
}

// KeepMax groups items by key and keeps, per key, the item with the highest
// score. When scores tie, the earliest item wins.
func KeepMax[K comparable, T any](items []T, key func(T) K, score func(T) int64) map[K]T {
	out := make(map[K]T, len(items))
	best := make(map[K]int64, len(items))
	for _, item := range items {
		k := key(item)
		s := score(item)
		if cur, ok := best[k]; ok && s <= cur {
			continue
		}
		out[k] = item
		best[k] = s
	}
	return out
}

// UnionKeys returns the keys of both maps without duplicates, sorted with cmp.
func UnionKeys[K comparable, L, R any](left map[K]L, right map[K]R, cmp func(a, b K) int) []K {
	union := make(map[K]struct{}, len(left)+len(right))
	for k := range left {
		union[k] = struct{}{}
	}
	for k := range right {
		union[k] = struct{}{}
	}

	keys := make([]K, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	return keys
}

// Join pairs both sides over their ordered key union.
func Join[K comparable, L, R any](left map[K]L, right map[K]R, cmp func(a, b K) int) []Pair[K, L, R] {
	keys := UnionKeys(left, right, cmp)
	pairs := make([]Pair[K, L, R], 0, len(keys))
	for _, k := range keys {
		p := Pair[K, L, R]{Key: k}
		if l, ok := left[k]; ok {
			p.Left = &l
		}
		if r, ok := right[k]; ok {
			p.Right = &r
		}
		pairs = append(pairs, p)
	}
	return pairs
}
