package analysis

import (
	"context"

	"github.com/san-kum/dancesim/internal/dance"
)

// StepFunc advances a state by one round.
type StepFunc[T comparable] func(dance.State[T]) (dance.State[T], error)

// FindCycle returns the index mu of the first state on the cycle and the
// cycle length lambda of the sequence x0, f(x0), f(f(x0)), ...
func FindCycle[T comparable](ctx context.Context, x0 dance.State[T], f StepFunc[T]) (mu, lambda int, err error) {
	var tortoise, hare dance.State[T]

	if tortoise, err = f(x0); err != nil {
		return 0, 0, err
	}
	if hare, err = twice(f, x0); err != nil {
		return 0, 0, err
	}
	for !tortoise.Equal(hare) {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		if tortoise, err = f(tortoise); err != nil {
			return 0, 0, err
		}
		if hare, err = twice(f, hare); err != nil {
			return 0, 0, err
		}
	}

	// cycle entry
	tortoise = x0
	for !tortoise.Equal(hare) {
		if tortoise, err = f(tortoise); err != nil {
			return 0, 0, err
		}
		if hare, err = f(hare); err != nil {
			return 0, 0, err
		}
		mu++
	}

	lambda = 1
	if hare, err = f(tortoise); err != nil {
		return 0, 0, err
	}
	for !tortoise.Equal(hare) {
		if hare, err = f(hare); err != nil {
			return 0, 0, err
		}
		lambda++
	}

	return mu, lambda, nil
}

func twice[T comparable](f StepFunc[T], x dance.State[T]) (dance.State[T], error) {
	y, err := f(x)
	if err != nil {
		return nil, err
	}
	return f(y)
}
