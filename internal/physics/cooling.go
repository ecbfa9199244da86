package physics

import "github.com/san-kum/fieldlab/internal/sim"

// Cooling is Newton's law of cooling, dT/dt = -k (T - Tambient).
type Cooling struct {
	K        float64
	TInitial float64
	TAmbient float64
}

func NewCooling() *Cooling {
	return &Cooling{K: 0.05, TInitial: 100.0, TAmbient: 25.0}
}

func (m *Cooling) StateDim() int            { return 1 }
func (m *Cooling) StateNames() []string     { return []string{"T"} }
func (m *Cooling) DefaultState() sim.State  { return sim.State{m.TInitial} }

func (m *Cooling) Derivative(x sim.State, _ float64) sim.State {
	return sim.State{-m.K * (x[0] - m.TAmbient)}
}

func (m *Cooling) Params() map[string]float64 {
	return map[string]float64{"k": m.K, "t_initial": m.TInitial, "t_ambient": m.TAmbient}
}

func (m *Cooling) SetParam(name string, v float64) error {
	switch name {
	case "k":
		m.K = v
	case "t_initial":
		m.TInitial = v
	case "t_ambient":
		m.TAmbient = v
	default:
		return sim.ErrUnknownParam
	}
	return nil
}
