package utils

// SeenSet tracks listing-card signatures already processed in this run.
// First occurrence wins; later duplicates are dropped by the caller.
type SeenSet struct {
	seen map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Add returns true if the signature was newly added, false if already present.
func (s *SeenSet) Add(sig string) bool {
	if _, exists := s.seen[sig]; exists {
		return false
	}
	s.seen[sig] = struct{}{}
	return true
}

// Contains returns true if the signature has already been recorded.
func (s *SeenSet) Contains(sig string) bool {
	_, exists := s.seen[sig]
	return exists
}

// Size returns the number of unique signatures tracked.
func (s *SeenSet) Size() int {
	return len(s.seen)
}
