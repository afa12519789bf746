package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dancesim/internal/dance"
	"github.com/san-kum/dancesim/internal/experiment"
	"github.com/san-kum/dancesim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted list of dances, run one after another.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one dance. Moves takes precedence over MovesFile; a
// relative MovesFile is resolved against the scenario file's directory.
type ScenarioStep struct {
	Name       string   `yaml:"name"`
	Moves      string   `yaml:"moves"`
	MovesFile  string   `yaml:"moves_file"`
	Alphabet   string   `yaml:"alphabet"`
	Rounds     int      `yaml:"rounds"`
	MaxHistory *int     `yaml:"max_history"`
	Expect     string   `yaml:"expect"`
	Metrics    []string `yaml:"metrics"`
}

// StepResult summarizes one finished step.
type StepResult struct {
	Name        string
	Final       string
	CycleStart  int
	CycleLength int
	Metrics     map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range scenario.Steps {
		f := scenario.Steps[i].MovesFile
		if f != "" && !filepath.IsAbs(f) {
			scenario.Steps[i].MovesFile = filepath.Join(dir, f)
		}
	}

	return &scenario, nil
}

// RunScenario executes all steps in a scenario. It stops at the first step
// that fails or whose final line-up differs from its expectation.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		logger.Info("running step", "n", i+1, "of", len(scenario.Steps), "name", name)

		text := step.Moves
		if text == "" {
			data, err := os.ReadFile(step.MovesFile)
			if err != nil {
				return results, fmt.Errorf("%s: %w", name, err)
			}
			text = string(data)
		}

		moves, err := dance.ParseAll(experiment.SplitMoves(text))
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		metrics, err := registry.GetMetrics(step.Metrics)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		maxHistory := sim.DefaultMaxHistory
		if step.MaxHistory != nil {
			maxHistory = *step.MaxHistory
		}
		exp := experiment.New(experiment.Config{
			Alphabet:   step.Alphabet,
			Rounds:     step.Rounds,
			MaxHistory: maxHistory,
		})
		if err := exp.Setup(moves, metrics); err != nil {
			return results, fmt.Errorf("%s setup: %w", name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s run: %w", name, err)
		}

		final := result.Final.String()
		results = append(results, StepResult{
			Name:        name,
			Final:       final,
			CycleStart:  result.CycleStart,
			CycleLength: result.CycleLength,
			Metrics:     result.Metrics,
		})

		if step.Expect != "" && step.Expect != final {
			return results, fmt.Errorf("%s: expected %s, got %s", name, step.Expect, final)
		}
	}

	return results, nil
}
