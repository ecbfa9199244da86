package physics

import (
	"math"
	"sort"

	"github.com/san-kum/fieldlab/internal/sim"
)

// Fracture computes the elastic energy release rate over a range of
// crack lengths for two loading cases:
//
//	fixed load:         G = sigma^2 * pi * a / E
//	fixed displacement: G = delta^2 * E * pi / a
type Fracture struct {
	E     float64 // Young's modulus (Pa)
	Sigma float64 // applied stress (Pa)
	Delta float64 // applied displacement (m)
	Gc    float64 // critical fracture energy (J/m^2)
	AMin  float64 // shortest crack length (m)
	AMax  float64 // longest crack length (m)
}

func NewFracture() *Fracture {
	return &Fracture{
		E:     210e9,
		Sigma: 100e6,
		Delta: 0.001,
		Gc:    1000,
		AMin:  0.001,
		AMax:  0.05,
	}
}

func (m *Fracture) GFixedLoad(a float64) float64 {
	return m.Sigma * m.Sigma * math.Pi * a / m.E
}

func (m *Fracture) GFixedDisplacement(a float64) float64 {
	return m.Delta * m.Delta * m.E * math.Pi / a
}

// Curves samples both loading cases over n crack lengths.
func (m *Fracture) Curves(n int) *sim.Dataset {
	if n < 2 {
		n = 2
	}
	ds := &sim.Dataset{XLabel: "a (m)"}
	ds.X = make([]float64, n)
	gl := make([]float64, n)
	gd := make([]float64, n)
	for i := 0; i < n; i++ {
		a := m.AMin + (m.AMax-m.AMin)*float64(i)/float64(n-1)
		ds.X[i] = a
		gl[i] = m.GFixedLoad(a)
		gd[i] = m.GFixedDisplacement(a)
	}
	ds.Series = []sim.Series{
		{Name: "G_fixed_load", Y: gl},
		{Name: "G_fixed_displacement", Y: gd},
	}
	return ds
}

// CriticalLengths interpolates the crack lengths at which each curve
// crosses Gc. A NaN entry means the curve never reaches Gc within
// [AMin, AMax].
func (m *Fracture) CriticalLengths(n int) (fixedLoad, fixedDisp float64) {
	ds := m.Curves(n)
	fixedLoad = interpCrossing(ds.Get("G_fixed_load"), ds.X, m.Gc)
	fixedDisp = interpCrossing(ds.Get("G_fixed_displacement"), ds.X, m.Gc)
	return
}

// interpCrossing linearly interpolates x at which g crosses target,
// after sorting by g (the curves are monotone in a).
func interpCrossing(g, x []float64, target float64) float64 {
	type pt struct{ g, x float64 }
	pts := make([]pt, len(g))
	for i := range g {
		pts[i] = pt{g[i], x[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].g < pts[j].g })

	if target < pts[0].g || target > pts[len(pts)-1].g {
		return math.NaN()
	}
	for i := 1; i < len(pts); i++ {
		if target <= pts[i].g {
			lo, hi := pts[i-1], pts[i]
			if hi.g == lo.g {
				return lo.x
			}
			return lo.x + (hi.x-lo.x)*(target-lo.g)/(hi.g-lo.g)
		}
	}
	return math.NaN()
}

func (m *Fracture) Params() map[string]float64 {
	return map[string]float64{
		"e": m.E, "sigma": m.Sigma, "delta": m.Delta, "gc": m.Gc,
		"a_min": m.AMin, "a_max": m.AMax,
	}
}

func (m *Fracture) SetParam(name string, v float64) error {
	switch name {
	case "e":
		m.E = v
	case "sigma":
		m.Sigma = v
	case "delta":
		m.Delta = v
	case "gc":
		m.Gc = v
	case "a_min":
		m.AMin = v
	case "a_max":
		m.AMax = v
	default:
		return sim.ErrUnknownParam
	}
	return nil
}
