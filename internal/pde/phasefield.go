package pde

import (
	"context"
	"math"
	"strconv"

	"github.com/san-kum/fieldlab/internal/sim"
)

// AllenCahn evolves a 1D non-conserved order parameter under a
// double-well potential with gradient energy:
//
//	dphi/dt = -M ( 2W phi (1-phi)(1-2phi) - kappa lap(phi) )
//
// on [0,1] with Dirichlet ends phi(0)=0, phi(1)=1. The initial
// profile is the equilibrium tanh interface centred at x=0.5.
type AllenCahn struct {
	Nx            int
	W             float64 // double-well strength
	Kappa         float64 // gradient energy coefficient
	M             float64 // mobility
	Dt            float64
	Steps         int
	SnapshotEvery int
}

func NewAllenCahn() *AllenCahn {
	return &AllenCahn{
		Nx:            200,
		W:             1.0,
		Kappa:         1e-2,
		M:             1.0,
		Dt:            1e-4,
		Steps:         10000,
		SnapshotEvery: 1000,
	}
}

// InitialProfile returns x coordinates and the tanh seed profile.
func (p *AllenCahn) InitialProfile() (x, phi []float64) {
	x = make([]float64, p.Nx)
	phi = make([]float64, p.Nx)
	width := math.Sqrt(2 * p.Kappa / p.W)
	for i := range x {
		x[i] = float64(i) / float64(p.Nx-1)
		phi[i] = 0.5 * (1 + math.Tanh((x[i]-0.5)/width))
	}
	phi[0] = 0.0
	phi[p.Nx-1] = 1.0
	return x, phi
}

// Run integrates the field and returns snapshots as a Dataset, one
// series per recorded step.
func (p *AllenCahn) Run(ctx context.Context) (*sim.Dataset, error) {
	x, phi := p.InitialProfile()
	dx := x[1] - x[0]
	inv2 := 1.0 / (dx * dx)

	ds := &sim.Dataset{XLabel: "x", X: x}
	lap := make([]float64, p.Nx)

	snapshot := func(step int) {
		y := make([]float64, p.Nx)
		copy(y, phi)
		ds.Series = append(ds.Series, sim.Series{
			Name: stepLabel(step),
			Y:    y,
		})
	}
	snapshot(0)

	for step := 1; step <= p.Steps; step++ {
		select {
		case <-ctx.Done():
			return ds, ctx.Err()
		default:
		}

		for i := 1; i < p.Nx-1; i++ {
			lap[i] = (phi[i+1] - 2*phi[i] + phi[i-1]) * inv2
		}
		for i := 1; i < p.Nx-1; i++ {
			dF := p.W*2*phi[i]*(1-phi[i])*(1-2*phi[i]) - p.Kappa*lap[i]
			phi[i] -= p.M * dF * p.Dt
		}
		phi[0] = 0.0
		phi[p.Nx-1] = 1.0

		if p.SnapshotEvery > 0 && step%p.SnapshotEvery == 0 {
			snapshot(step)
		}
	}

	for i := range phi {
		if math.IsNaN(phi[i]) || math.IsInf(phi[i], 0) {
			return ds, sim.ErrInvalidState
		}
	}
	return ds, nil
}

func stepLabel(step int) string {
	return "phi_step_" + strconv.Itoa(step)
}
