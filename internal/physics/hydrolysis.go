package physics

import (
	"math"

	"github.com/san-kum/fieldlab/internal/sim"
)

// Hydrolysis models metal ion hydrolysis coupled to water
// autoionization:
//
//	M + H2O <-> MOH + H     (K1)
//	H2O     <-> H + OH      (K2)
//
// State is the mole fractions [xM, xMOH, xH, xOH]. The H and OH
// fractions are floored at HFloor after every step so the pH log
// never sees zero.
type Hydrolysis struct {
	K1   float64 // hydrolysis equilibrium constant
	K2   float64 // water autoionization constant
	Kb1  float64 // forward rate, hydrolysis
	Kb2  float64 // forward rate, autoionization
	Ctot float64 // total site concentration (mol/m^3), converts x to molarity

	HFloor float64
}

func NewHydrolysis() *Hydrolysis {
	return &Hydrolysis{
		K1:     1.0e-4,
		K2:     1.0e-14,
		Kb1:    2.78e3,
		Kb2:    2.78e3,
		Ctot:   5.55e4,
		HFloor: 1e-14,
	}
}

func (m *Hydrolysis) StateDim() int { return 4 }

func (m *Hydrolysis) StateNames() []string {
	return []string{"xM", "xMOH", "xH", "xOH"}
}

// DefaultState starts with pure dissolved metal in neutral water.
func (m *Hydrolysis) DefaultState() sim.State {
	xH := 1e-12
	return sim.State{0.1, 0.0, xH, m.K2 / xH}
}

func (m *Hydrolysis) Derivative(x sim.State, _ float64) sim.State {
	xM, xMOH, xH, xOH := x[0], x[1], x[2], x[3]
	r1 := m.Kb1 * (m.K1*xM - xH*xMOH)
	r2 := m.Kb2 * (m.K2 - xH*xOH)
	return sim.State{-r1, r1, r1 + r2, r2}
}

// Clamp floors the species fractions, keeping the rates defined and
// the pH finite.
func (m *Hydrolysis) Clamp(x sim.State) {
	if x[0] < 0 {
		x[0] = 0
	}
	if x[1] < 0 {
		x[1] = 0
	}
	if x[2] < m.HFloor {
		x[2] = m.HFloor
	}
	if x[3] < m.HFloor {
		x[3] = m.HFloor
	}
}

func (m *Hydrolysis) DerivedNames() []string { return []string{"pH"} }

func (m *Hydrolysis) Derived(x sim.State) []float64 {
	return []float64{-math.Log10(x[2] * m.Ctot / 1000)}
}

func (m *Hydrolysis) Params() map[string]float64 {
	return map[string]float64{
		"k1": m.K1, "k2": m.K2, "kb1": m.Kb1, "kb2": m.Kb2, "ctot": m.Ctot,
	}
}

func (m *Hydrolysis) SetParam(name string, v float64) error {
	switch name {
	case "k1":
		m.K1 = v
	case "k2":
		m.K2 = v
	case "kb1":
		m.Kb1 = v
	case "kb2":
		m.Kb2 = v
	case "ctot":
		m.Ctot = v
	default:
		return sim.ErrUnknownParam
	}
	return nil
}
