package pde

import (
	"context"
	"math"
	"strconv"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/fieldlab/internal/sim"
)

// SpectralDiffusion integrates rho_t = D lap(rho) on a periodic 1D
// domain with an FFT laplacian. Nx must be a power of two for the
// radix-2 transform to stay exact.
type SpectralDiffusion struct {
	Nx            int
	Lx            float64
	D             float64
	Dt            float64
	Steps         int
	SnapshotEvery int
}

func NewSpectralDiffusion() *SpectralDiffusion {
	return &SpectralDiffusion{
		Nx:            256,
		Lx:            1.0,
		D:             1e-4,
		Dt:            3e-2,
		Steps:         5000,
		SnapshotEvery: 1000,
	}
}

// Wavenumbers returns the FFT-ordered angular wavenumbers for a
// periodic domain of length lx sampled at n points.
func Wavenumbers(n int, lx float64) []float64 {
	k := make([]float64, n)
	base := 2 * math.Pi / lx
	for i := 0; i < n/2; i++ {
		k[i] = base * float64(i)
	}
	for i := n / 2; i < n; i++ {
		k[i] = base * float64(i-n)
	}
	return k
}

// Laplacian1D applies the spectral second derivative on a periodic
// domain.
func Laplacian1D(f []float64, lx float64) []float64 {
	n := len(f)
	k := Wavenumbers(n, lx)
	hat := fft.FFTReal(f)
	for i := range hat {
		hat[i] *= complex(-k[i]*k[i], 0)
	}
	out := fft.IFFT(hat)
	lap := make([]float64, n)
	for i := range out {
		lap[i] = real(out[i])
	}
	return lap
}

func (p *SpectralDiffusion) Run(ctx context.Context) (*sim.Dataset, error) {
	n := p.Nx
	dx := p.Lx / float64(n)
	x := make([]float64, n)
	rho := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * dx
		rho[i] = math.Sin(2 * math.Pi * x[i] / p.Lx)
	}

	ds := &sim.Dataset{XLabel: "x", X: x}
	snapshot := func(step int) {
		y := make([]float64, n)
		copy(y, rho)
		ds.Series = append(ds.Series, sim.Series{Name: "rho_step_" + strconv.Itoa(step), Y: y})
	}
	snapshot(0)

	for step := 1; step <= p.Steps; step++ {
		select {
		case <-ctx.Done():
			return ds, ctx.Err()
		default:
		}
		lap := Laplacian1D(rho, p.Lx)
		for i := range rho {
			rho[i] += p.Dt * p.D * lap[i]
		}
		if p.SnapshotEvery > 0 && step%p.SnapshotEvery == 0 {
			snapshot(step)
		}
	}
	return ds, nil
}
