package analysis

import (
	"fmt"

	"github.com/san-kum/dancesim/internal/dance"
)

// Factored is a round split in two commuting parts: the spins and exchanges
// only move positions, the partner moves only rename tokens.
type Factored[T comparable] struct {
	tokens    dance.State[T]
	positions []int // after one round, position p holds what stood at positions[p]
	renames   []int // after one round, token i has become token renames[i]
}

// Factor splits moves as danced from x0.
func Factor[T comparable](x0 dance.State[T], moves []dance.Move[T]) (*Factored[T], error) {
	n := len(x0)
	line := make(dance.State[int], n)
	for i := range line {
		line[i] = i
	}
	named := x0.Clone()

	for i, m := range moves {
		var err error
		switch m.Kind {
		case dance.Spin:
			err = dance.NewSpin[int](m.Size).Apply(line)
		case dance.Exchange:
			err = dance.NewExchange[int](m.A, m.B).Apply(line)
		case dance.Partner:
			err = m.Apply(named)
		default:
			err = fmt.Errorf("%w: %v", dance.ErrMalformedMove, m.Kind)
		}
		if err != nil {
			return nil, &dance.MoveError{Index: i, Move: m.String(), Wrapped: err}
		}
	}

	renames := make([]int, n)
	for i, tok := range named {
		renames[i] = x0.Index(tok)
	}

	return &Factored[T]{
		tokens:    x0.Clone(),
		positions: []int(line),
		renames:   renames,
	}, nil
}

// Power returns the line-up after k rounds from the line the moves were
// factored against.
func (f *Factored[T]) Power(k int) dance.State[T] {
	pos := power(f.positions, k)
	ren := power(f.renames, k)

	out := make(dance.State[T], len(f.tokens))
	for p := range out {
		out[p] = f.tokens[ren[pos[p]]]
	}
	return out
}

func power(perm []int, k int) []int {
	result := identity(len(perm))
	base := append([]int(nil), perm...)
	for k > 0 {
		if k&1 == 1 {
			result = compose(base, result)
		}
		base = compose(base, base)
		k >>= 1
	}
	return result
}

// compose returns a after b: i -> a[b[i]].
func compose(a, b []int) []int {
	out := make([]int, len(a))
	for i := range out {
		out[i] = a[b[i]]
	}
	return out
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
