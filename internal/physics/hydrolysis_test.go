package physics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/fieldlab/internal/sim"
)

func TestHydrolysisFloorsHold(t *testing.T) {
	m := NewHydrolysis()
	res, err := sim.Run(context.Background(), m, sim.NewEuler(), m.DefaultState(),
		sim.Config{Dt: 1e-5, Duration: 0.05})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, x := range res.States {
		if x[2] < m.HFloor || x[3] < m.HFloor {
			t.Fatalf("species floor violated at step %d: xH=%g xOH=%g", i, x[2], x[3])
		}
		if x[0] < 0 || x[1] < 0 {
			t.Fatalf("negative fraction at step %d: xM=%g xMOH=%g", i, x[0], x[1])
		}
	}
}

func TestHydrolysisPHFinite(t *testing.T) {
	m := NewHydrolysis()
	res, err := sim.Run(context.Background(), m, sim.NewRK4(), m.DefaultState(),
		sim.Config{Dt: 1e-5, Duration: 0.05})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	ds := res.ToDataset(m)
	ph := ds.Get("pH")
	if ph == nil {
		t.Fatal("pH series missing")
	}
	for i, v := range ph {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("pH not finite at step %d: %g", i, v)
		}
	}
}

func TestHydrolysisAcidifies(t *testing.T) {
	m := NewHydrolysis()
	res, err := sim.Run(context.Background(), m, sim.NewRK4(), m.DefaultState(),
		sim.Config{Dt: 1e-5, Duration: 0.05})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	ds := res.ToDataset(m)
	ph := ds.Get("pH")
	if ph[len(ph)-1] >= ph[0] {
		t.Errorf("hydrolysis should release protons: pH went %g -> %g", ph[0], ph[len(ph)-1])
	}
}

func TestHydrolysisDeterministic(t *testing.T) {
	run := func() []float64 {
		m := NewHydrolysis()
		res, err := sim.Run(context.Background(), m, sim.NewRK4(), m.DefaultState(),
			sim.Config{Dt: 1e-5, Duration: 0.01})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return res.States[len(res.States)-1]
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("component %d differs between identical runs: %g vs %g", i, a[i], b[i])
		}
	}
}
