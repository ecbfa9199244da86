package physics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/fieldlab/internal/sim"
)

func TestCoolingMatchesAnalytic(t *testing.T) {
	m := NewCooling()
	res, err := sim.Run(context.Background(), m, sim.NewRK4(), m.DefaultState(),
		sim.Config{Dt: 0.01, Duration: 50})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, x := range res.States {
		tt := res.Times[i]
		want := m.TAmbient + (m.TInitial-m.TAmbient)*math.Exp(-m.K*tt)
		if math.Abs(x[0]-want) > 1e-6 {
			t.Fatalf("temperature at t=%.2f: got %g, expected %g", tt, x[0], want)
		}
	}
}

func TestFractureCurveShapes(t *testing.T) {
	m := NewFracture()
	ds := m.Curves(100)

	gl := ds.Get("G_fixed_load")
	gd := ds.Get("G_fixed_displacement")
	if gl == nil || gd == nil {
		t.Fatal("expected both loading-case series")
	}

	for i := 1; i < len(gl); i++ {
		if gl[i] <= gl[i-1] {
			t.Fatalf("fixed-load G should increase with crack length at %d", i)
		}
		if gd[i] >= gd[i-1] {
			t.Fatalf("fixed-displacement G should decrease with crack length at %d", i)
		}
	}
}

func TestFractureGValues(t *testing.T) {
	m := NewFracture()
	a := 0.01

	wantLoad := m.Sigma * m.Sigma * math.Pi * a / m.E
	if got := m.GFixedLoad(a); math.Abs(got-wantLoad) > wantLoad*1e-12 {
		t.Errorf("fixed-load G: got %g, expected %g", got, wantLoad)
	}

	wantDisp := m.Delta * m.Delta * m.E * math.Pi / a
	if got := m.GFixedDisplacement(a); math.Abs(got-wantDisp) > wantDisp*1e-12 {
		t.Errorf("fixed-displacement G: got %g, expected %g", got, wantDisp)
	}
}

func TestFractureCriticalLengths(t *testing.T) {
	m := NewFracture()
	aLoad, _ := m.CriticalLengths(2000)

	if math.IsNaN(aLoad) {
		t.Fatal("fixed-load critical length should exist for default parameters")
	}

	// G(a_c) = Gc  =>  a_c = Gc E / (sigma^2 pi)
	want := m.Gc * m.E / (m.Sigma * m.Sigma * math.Pi)
	if math.Abs(aLoad-want) > want*1e-3 {
		t.Errorf("fixed-load critical length: got %g, expected %g", aLoad, want)
	}
}

func TestFractureCriticalLengthOutOfRange(t *testing.T) {
	m := NewFracture()
	m.Gc = 1e12 // far above anything the curves reach
	aLoad, aDisp := m.CriticalLengths(100)
	if !math.IsNaN(aLoad) || !math.IsNaN(aDisp) {
		t.Errorf("expected NaN for unreachable Gc, got %g, %g", aLoad, aDisp)
	}
}
