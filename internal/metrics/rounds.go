package metrics

import "github.com/san-kum/dancesim/internal/dance"

// Rounds counts observed rounds. With a cycle this is the number of rounds
// actually danced, not the number requested.
type Rounds[T comparable] struct {
	n int
}

func NewRounds[T comparable]() *Rounds[T] { return &Rounds[T]{} }

func (r *Rounds[T]) Name() string                        { return "rounds_observed" }
func (r *Rounds[T]) Observe(round int, x dance.State[T]) { r.n++ }
func (r *Rounds[T]) Value() float64                      { return float64(r.n) }
func (r *Rounds[T]) Reset()                              { r.n = 0 }
