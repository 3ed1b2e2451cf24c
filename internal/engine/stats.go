package engine

// SearchStats accumulates counters for one iterative-deepening pass (or,
// merged via Add, for the whole choose_move call).
type SearchStats struct {
	NodesSearched  int64
	BoardsEvaluated int64
	TTStored       int64
	TTHits         int64
	TTUpperHits    int64
	TTExactHits    int64
	TTLowerHits    int64
	MaxPly         int
}

// Add merges other into s: every counter sums except MaxPly, which takes
// the larger of the two — the ply reached in a later iteration does not
// make an earlier iteration's ply count wrong, so summing it would be
// meaningless.
func (s *SearchStats) Add(other SearchStats) {
	s.NodesSearched += other.NodesSearched
	s.BoardsEvaluated += other.BoardsEvaluated
	s.TTStored += other.TTStored
	s.TTHits += other.TTHits
	s.TTUpperHits += other.TTUpperHits
	s.TTExactHits += other.TTExactHits
	s.TTLowerHits += other.TTLowerHits
	if other.MaxPly > s.MaxPly {
		s.MaxPly = other.MaxPly
	}
}
