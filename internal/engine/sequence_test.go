package engine

import "testing"

func TestSequenceNext(t *testing.T) {
	var s Sequence
	for want := int64(1); want <= 3; want++ {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
}

func TestSequenceAdvance(t *testing.T) {
	var s Sequence
	s.Advance(10)
	if got := s.Next(); got != 11 {
		t.Errorf("Next() after Advance(10) = %d, want 11", got)
	}

	// Advancing backwards is a no-op.
	s.Advance(5)
	if got := s.Next(); got != 12 {
		t.Errorf("Next() after stale Advance = %d, want 12", got)
	}
}
