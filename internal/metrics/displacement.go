package metrics

import "github.com/san-kum/dancesim/internal/dance"

// Displacement averages the number of tokens standing away from where they
// stood in the first observed round.
type Displacement[T comparable] struct {
	name    string
	home    dance.State[T]
	samples int
	total   int
}

func NewDisplacement[T comparable]() *Displacement[T] {
	return &Displacement[T]{name: "displacement"}
}

func (d *Displacement[T]) Name() string { return d.name }

func (d *Displacement[T]) Observe(round int, x dance.State[T]) {
	if d.home == nil {
		d.home = x.Clone()
	}
	d.total += x.Displacement(d.home)
	d.samples++
}

func (d *Displacement[T]) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.total) / float64(d.samples)
}

func (d *Displacement[T]) Reset() {
	d.home = nil
	d.samples = 0
	d.total = 0
}

// FixedPoints counts rounds in which at least one token is home.
type FixedPoints[T comparable] struct {
	name   string
	home   dance.State[T]
	rounds int
}

func NewFixedPoints[T comparable]() *FixedPoints[T] {
	return &FixedPoints[T]{name: "fixed_points"}
}

func (f *FixedPoints[T]) Name() string { return f.name }

func (f *FixedPoints[T]) Observe(round int, x dance.State[T]) {
	if f.home == nil {
		f.home = x.Clone()
	}
	if x.Displacement(f.home) < len(x) {
		f.rounds++
	}
}

func (f *FixedPoints[T]) Value() float64 { return float64(f.rounds) }

func (f *FixedPoints[T]) Reset() {
	f.home = nil
	f.rounds = 0
}
