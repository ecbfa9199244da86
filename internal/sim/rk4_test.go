package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

type oscillator struct{}

func (o *oscillator) Derivative(x State, t float64) State {
	return State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int        { return 2 }
func (o *oscillator) StateNames() []string { return []string{"pos", "vel"} }

func TestRK4Accuracy(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	x := State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	sys := &oscillator{}
	integ := NewEuler()

	x := State{1.0, 0.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}

	expected := math.Cos(1.0)
	if math.Abs(x[0]-expected) > 1e-2 {
		t.Errorf("euler error too large: got %.6f, expected %.6f", x[0], expected)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	x := State{1.0, 0.0}
	_ = integ.Step(sys, x, 0, 0.01)

	if x[0] != 1.0 || x[1] != 0.0 {
		t.Errorf("input state mutated: %v", x)
	}
}

type floored struct{}

func (f *floored) Derivative(x State, t float64) State { return State{-10 * x[0]} }
func (f *floored) StateDim() int                       { return 1 }
func (f *floored) StateNames() []string                { return []string{"c"} }
func (f *floored) Clamp(x State) {
	if x[0] < 1e-6 {
		x[0] = 1e-6
	}
}
func (f *floored) DerivedNames() []string { return []string{"logc"} }
func (f *floored) Derived(x State) []float64 {
	return []float64{math.Log10(x[0])}
}

func TestRunClampAndDerived(t *testing.T) {
	sys := &floored{}
	res, err := Run(context.Background(), sys, NewEuler(), State{1.0}, Config{Dt: 0.05, Duration: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, x := range res.States {
		if x[0] < 1e-6 {
			t.Fatalf("clamp floor violated at step %d: %g", i, x[0])
		}
	}

	if len(res.Derived) != len(res.States) {
		t.Fatalf("expected %d derived rows, got %d", len(res.States), len(res.Derived))
	}

	ds := res.ToDataset(sys)
	if ds.Get("logc") == nil {
		t.Error("derived series missing from dataset")
	}
	if ds.Get("c") == nil {
		t.Error("state series missing from dataset")
	}
	if len(ds.Get("c")) != len(ds.X) {
		t.Errorf("series length %d does not match x length %d", len(ds.Get("c")), len(ds.X))
	}
}

type blowup struct{}

func (b *blowup) Derivative(x State, t float64) State { return State{x[0] * x[0]} }
func (b *blowup) StateDim() int                       { return 1 }
func (b *blowup) StateNames() []string                { return []string{"x"} }

func TestRunStopsOnInvalidState(t *testing.T) {
	res, err := Run(context.Background(), &blowup{}, NewEuler(), State{1.0}, Config{Dt: 1.0, Duration: 2000})
	if err == nil {
		t.Fatal("expected step error from divergent system")
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T: %v", err, err)
	}
	if len(res.States) == 0 {
		t.Error("expected partial results before divergence")
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := Run(context.Background(), &oscillator{}, NewEuler(), State{1, 0}, Config{Dt: 0, Duration: 1})
	if err == nil {
		t.Error("expected error for zero dt")
	}
	_, err = Run(context.Background(), &oscillator{}, NewEuler(), State{1, 0}, Config{Dt: 0.1, Duration: -1})
	if err == nil {
		t.Error("expected error for negative duration")
	}
}
