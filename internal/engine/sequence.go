package engine

// Sequence hands out monotonic identifiers. Incidents and service requests
// share one sequence so the ticket ID space stays collision-free across both
// variants. Callers must hold the engine lock.
type Sequence struct {
	last int64
}

// Next returns the following identifier.
func (s *Sequence) Next() int64 {
	s.last++
	return s.last
}

// Advance moves the sequence past an externally observed identifier, keeping
// future allocations collision-free after a reconstruction from the store.
func (s *Sequence) Advance(id int64) {
	if id > s.last {
		s.last = id
	}
}
