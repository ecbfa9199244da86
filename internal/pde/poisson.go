package pde

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Epsilon0 is the vacuum permittivity (F/m).
const Epsilon0 = 8.854e-12

var (
	// ErrNoConvergence indicates the SOR iteration hit its sweep
	// budget before reaching tolerance.
	ErrNoConvergence = errors.New("pde: SOR did not converge")

	// ErrBadGrid indicates a grid too small or non-rectangular.
	ErrBadGrid = errors.New("pde: invalid grid")
)

// SolvePoissonFFT1D solves d2phi/dx2 = -rho/eps0 on a periodic domain,
// fixing the zero mode so the mean potential is zero. len(rho) should
// be a power of two.
func SolvePoissonFFT1D(rho []float64, lx, eps0 float64) []float64 {
	n := len(rho)
	k := Wavenumbers(n, lx)
	hat := fft.FFTReal(rho)
	for i := range hat {
		if i == 0 {
			hat[0] = 0 // zero-mean gauge
			continue
		}
		hat[i] /= complex(eps0*k[i]*k[i], 0)
	}
	out := fft.IFFT(hat)
	phi := make([]float64, n)
	for i := range out {
		phi[i] = real(out[i])
	}
	return phi
}

// SOR solves lap(phi) = -rho/eps0 on a uniform N x N grid with
// homogeneous Dirichlet boundaries using successive over-relaxation.
type SOR struct {
	Omega    float64 // over-relaxation factor in (0,2); 0 = auto
	Tol      float64 // max |update| per sweep at convergence
	MaxIters int
}

func NewSOR() *SOR {
	return &SOR{Tol: 1e-8, MaxIters: 20000}
}

// Solve returns the potential and the number of sweeps performed.
// rho must be rectangular; phi is allocated fresh on every call.
func (s *SOR) Solve(rho [][]float64, dx, eps0 float64) ([][]float64, int, error) {
	ny := len(rho)
	if ny < 3 {
		return nil, 0, fmt.Errorf("%w: need at least 3 rows, got %d", ErrBadGrid, ny)
	}
	nx := len(rho[0])
	for j := range rho {
		if len(rho[j]) != nx {
			return nil, 0, fmt.Errorf("%w: ragged row %d", ErrBadGrid, j)
		}
	}
	if nx < 3 {
		return nil, 0, fmt.Errorf("%w: need at least 3 columns, got %d", ErrBadGrid, nx)
	}

	omega := s.Omega
	if omega <= 0 || omega >= 2 {
		// textbook optimum for the 5-point laplacian on an N-grid
		n := float64(max(nx, ny))
		omega = 2 / (1 + math.Sin(math.Pi/n))
	}

	phi := make([][]float64, ny)
	for j := range phi {
		phi[j] = make([]float64, nx)
	}

	h2 := dx * dx
	for iter := 1; iter <= s.MaxIters; iter++ {
		maxDelta := 0.0
		for j := 1; j < ny-1; j++ {
			for i := 1; i < nx-1; i++ {
				gs := 0.25 * (phi[j][i+1] + phi[j][i-1] + phi[j+1][i] + phi[j-1][i] + h2*rho[j][i]/eps0)
				delta := omega * (gs - phi[j][i])
				phi[j][i] += delta
				if d := math.Abs(delta); d > maxDelta {
					maxDelta = d
				}
			}
		}
		if maxDelta < s.Tol {
			return phi, iter, nil
		}
	}
	return phi, s.MaxIters, ErrNoConvergence
}

// GaussianCharge fills an n x n grid with a centred Gaussian charge
// density of width sigma (in grid fractions) and peak amplitude amp.
func GaussianCharge(n int, sigma, amp float64) [][]float64 {
	rho := make([][]float64, n)
	for j := range rho {
		rho[j] = make([]float64, n)
		for i := range rho[j] {
			dxu := float64(i)/float64(n-1) - 0.5
			dyu := float64(j)/float64(n-1) - 0.5
			rho[j][i] = amp * math.Exp(-(dxu*dxu+dyu*dyu)/(2*sigma*sigma))
		}
	}
	return rho
}
