package sim

import (
	"errors"

	"github.com/san-kum/dancesim/internal/dance"
)

var (
	// ErrInvalidConfig indicates a negative round count or history limit.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrHistoryExhausted indicates the history limit was reached before any
	// state repeated.
	ErrHistoryExhausted = errors.New("sim: history limit reached without a repeat")
)

// DefaultMaxHistory bounds the states kept while looking for a repeat.
const DefaultMaxHistory = 1 << 17

type Metric[T comparable] interface {
	Name() string
	Observe(round int, x dance.State[T])
	Value() float64
	Reset()
}

type Observer[T comparable] interface {
	OnRound(round int, x dance.State[T])
}

type Config struct {
	Rounds      int
	MaxHistory  int
	KeepHistory bool
}

func DefaultConfig() Config {
	return Config{
		Rounds:     1,
		MaxHistory: DefaultMaxHistory,
	}
}

// Result is the outcome of a Run. CycleLength is zero when the rounds ran out
// before any state repeated.
type Result[T comparable] struct {
	Final          dance.State[T]
	CycleStart     int
	CycleLength    int
	RoundsExecuted int
	History        []dance.State[T]
	Metrics        map[string]float64
}

func (r *Result[T]) CycleFound() bool {
	return r.CycleLength > 0
}
