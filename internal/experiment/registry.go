package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dancesim/internal/metrics"
	"github.com/san-kum/dancesim/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric[string]
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric[string]),
	}

	r.metrics["displacement"] = func() sim.Metric[string] { return metrics.NewDisplacement[string]() }
	r.metrics["fixed_points"] = func() sim.Metric[string] { return metrics.NewFixedPoints[string]() }
	r.metrics["rounds_observed"] = func() sim.Metric[string] { return metrics.NewRounds[string]() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric[string], error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetrics(names []string) ([]sim.Metric[string], error) {
	out := make([]sim.Metric[string], 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
