package experiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/dancesim/internal/dance"
	"github.com/san-kum/dancesim/internal/sim"
)

type Config struct {
	Alphabet    string
	Rounds      int
	MaxHistory  int
	KeepHistory bool
}

// Experiment binds a parsed move list and a starting line-up to a simulator.
type Experiment struct {
	cfg       Config
	start     dance.State[string]
	simulator *sim.Simulator[string]
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(moves []dance.Move[string], metrics []sim.Metric[string]) error {
	start, err := dance.FromAlphabet(e.cfg.Alphabet)
	if err != nil {
		return err
	}
	e.start = start
	e.simulator = sim.New(moves)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result[string], error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, e.start, sim.Config{
		Rounds:      e.cfg.Rounds,
		MaxHistory:  e.cfg.MaxHistory,
		KeepHistory: e.cfg.KeepHistory,
	})
}

// Start returns the initial line-up.
func (e *Experiment) Start() dance.State[string] {
	return e.start
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator[string] {
	return e.simulator
}

// SplitMoves tokenizes a comma-separated move line, dropping surrounding
// whitespace and empty fields left by a trailing newline.
func SplitMoves(text string) []string {
	fields := strings.Split(strings.TrimSpace(text), ",")
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
