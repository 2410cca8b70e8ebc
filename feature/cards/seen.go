package cards

// SeenSet is an insertion-ordered set of strings.
type SeenSet struct {
	order []string
	index map[string]struct{}
}

// NewSeenSet returns an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{index: make(map[string]struct{})}
}

// Add inserts s and reports whether it was new.
func (s *SeenSet) Add(v string) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Len is the number of distinct values.
func (s *SeenSet) Len() int {
	return len(s.order)
}

// Items returns the values in first-seen order.
func (s *SeenSet) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
