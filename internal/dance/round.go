package dance

// Round applies moves to a copy of s, first to last, and returns the copy.
// An empty move list returns an unchanged copy. The first failing move aborts
// the round with a *MoveError.
func Round[T comparable](s State[T], moves []Move[T]) (State[T], error) {
	next := s.Clone()
	for i, m := range moves {
		if err := m.Apply(next); err != nil {
			return nil, &MoveError{Index: i, Move: m.String(), Wrapped: err}
		}
	}
	return next, nil
}
