package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE right-hand side with named state components.
type System interface {
	Derivative(x State, t float64) State
	StateDim() int
	StateNames() []string
}

// Clamper is implemented by systems that keep their state away from
// singularities after each step (concentration floors, log guards).
type Clamper interface {
	Clamp(x State)
}

// DerivedObserver is implemented by systems that expose extra series
// computed from the state (pH from a hydrogen mole fraction, etc).
type DerivedObserver interface {
	DerivedNames() []string
	Derived(x State) []float64
}

// Configurable systems accept named parameter overrides.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	Times   []float64
	States  []State
	Derived []State
}
