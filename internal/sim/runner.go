package sim

import (
	"context"
	"fmt"
)

// Run integrates sys from x0 over cfg.Duration with fixed steps.
// States are clamped after every step when the system implements
// Clamper; derived series are recorded when it implements
// DerivedObserver. The loop stops with a StepError if the state
// picks up a NaN or Inf.
func Run(ctx context.Context, sys System, integ Integrator, x0 State, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:  make([]float64, 0, steps+1),
		States: make([]State, 0, steps+1),
	}

	derived, _ := sys.(DerivedObserver)
	clamper, _ := sys.(Clamper)

	x := x0.Clone()
	if clamper != nil {
		clamper.Clamp(x)
	}
	t := 0.0

	record := func() {
		result.Times = append(result.Times, t)
		result.States = append(result.States, x.Clone())
		if derived != nil {
			result.Derived = append(result.Derived, State(derived.Derived(x)).Clone())
		}
	}
	record()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		x = integ.Step(sys, x, t, cfg.Dt)
		if clamper != nil {
			clamper.Clamp(x)
		}
		t = float64(i+1) * cfg.Dt

		if !x.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}
		record()
	}

	return result, nil
}

// Dataset is the common currency between models, the store and the
// renderers: one x column plus named y series of equal length.
type Dataset struct {
	XLabel string
	X      []float64
	Series []Series
}

type Series struct {
	Name string
	Y    []float64
}

// ToDataset flattens a Result into named series, one per state
// component plus one per derived quantity.
func (r *Result) ToDataset(sys System) *Dataset {
	ds := &Dataset{XLabel: "time", X: r.Times}
	names := sys.StateNames()
	for j, name := range names {
		y := make([]float64, len(r.States))
		for i := range r.States {
			y[i] = r.States[i][j]
		}
		ds.Series = append(ds.Series, Series{Name: name, Y: y})
	}
	if d, ok := sys.(DerivedObserver); ok {
		for j, name := range d.DerivedNames() {
			y := make([]float64, len(r.Derived))
			for i := range r.Derived {
				y[i] = r.Derived[i][j]
			}
			ds.Series = append(ds.Series, Series{Name: name, Y: y})
		}
	}
	return ds
}

// Get returns the series with the given name, or nil.
func (d *Dataset) Get(name string) []float64 {
	for _, s := range d.Series {
		if s.Name == name {
			return s.Y
		}
	}
	return nil
}
