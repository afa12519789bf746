package sim

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dancesim/internal/dance"
)

// Simulator repeats a dance round and short-circuits once the line-up
// repeats. It is not safe for concurrent use.
type Simulator[T comparable] struct {
	step      func(dance.State[T]) (dance.State[T], error)
	moves     []dance.Move[T]
	metrics   []Metric[T]
	observers []Observer[T]
	logger    *log.Logger
}

func New[T comparable](moves []dance.Move[T]) *Simulator[T] {
	s := &Simulator[T]{
		moves:     moves,
		metrics:   make([]Metric[T], 0),
		observers: make([]Observer[T], 0),
		logger:    log.Default(),
	}
	s.step = func(x dance.State[T]) (dance.State[T], error) {
		return dance.Round(x, s.moves)
	}
	return s
}

func (s *Simulator[T]) AddMetric(m Metric[T])     { s.metrics = append(s.metrics, m) }
func (s *Simulator[T]) AddObserver(o Observer[T]) { s.observers = append(s.observers, o) }
func (s *Simulator[T]) SetLogger(l *log.Logger)   { s.logger = l }
func (s *Simulator[T]) Moves() []dance.Move[T]    { return s.moves }

// Step performs a single round.
func (s *Simulator[T]) Step(x dance.State[T]) (dance.State[T], error) {
	return s.step(x)
}

// Run returns the state after cfg.Rounds rounds starting from x0.
//
// Every state seen before a round is recorded. When the state about to be
// danced was already seen at round j, the sequence is periodic from j with
// length L = i-j, and the answer is the recorded state at j + (n-j) mod L.
func (s *Simulator[T]) Run(ctx context.Context, x0 dance.State[T], cfg Config) (*Result[T], error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	n := cfg.Rounds
	history := make([]dance.State[T], 0, min(n, 1024))
	seen := newFingerprints[T]()
	x := x0.Clone()

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if j, ok := seen.lookup(x, history); ok {
			cycle := i - j
			s.logger.Debug("cycle detected", "start", j, "length", cycle, "rounds", n)
			return s.result(history[j+(n-j)%cycle].Clone(), j, cycle, i, history, cfg), nil
		}

		if cfg.MaxHistory > 0 && len(history) >= cfg.MaxHistory {
			return nil, fmt.Errorf("%w: %d states recorded", ErrHistoryExhausted, len(history))
		}

		history = append(history, x)
		seen.add(x, i)

		for _, m := range s.metrics {
			m.Observe(i, x)
		}
		for _, obs := range s.observers {
			obs.OnRound(i, x)
		}

		next, err := s.step(x)
		if err != nil {
			return nil, err
		}
		x = next
	}

	return s.result(x, 0, 0, n, history, cfg), nil
}

func (s *Simulator[T]) result(final dance.State[T], start, cycle, executed int, history []dance.State[T], cfg Config) *Result[T] {
	r := &Result[T]{
		Final:          final,
		CycleStart:     start,
		CycleLength:    cycle,
		RoundsExecuted: executed,
		Metrics:        make(map[string]float64, len(s.metrics)),
	}
	if cfg.KeepHistory {
		r.History = history
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

func (s *Simulator[T]) validateConfig(cfg Config) error {
	if cfg.Rounds < 0 {
		return fmt.Errorf("%w: rounds must be non-negative, got %d", ErrInvalidConfig, cfg.Rounds)
	}
	if cfg.MaxHistory < 0 {
		return fmt.Errorf("%w: max history must be non-negative, got %d", ErrInvalidConfig, cfg.MaxHistory)
	}
	return nil
}
