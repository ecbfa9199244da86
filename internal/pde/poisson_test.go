package pde

import (
	"math"
	"testing"
)

func TestPoissonFFT1DSingleMode(t *testing.T) {
	// rho = cos(2 pi x / L) has the analytic solution
	// phi = rho / (eps0 k1^2) under the zero-mean gauge.
	n := 128
	lx := 2.0
	eps0 := 1.0

	rho := make([]float64, n)
	for i := range rho {
		x := lx * float64(i) / float64(n)
		rho[i] = math.Cos(2 * math.Pi * x / lx)
	}

	phi := SolvePoissonFFT1D(rho, lx, eps0)

	k1 := 2 * math.Pi / lx
	for i := range phi {
		want := rho[i] / (eps0 * k1 * k1)
		if math.Abs(phi[i]-want) > 1e-10 {
			t.Fatalf("phi[%d]: got %g, expected %g", i, phi[i], want)
		}
	}
}

func TestPoissonFFT1DZeroMean(t *testing.T) {
	n := 64
	rho := make([]float64, n)
	for i := range rho {
		rho[i] = 1.0 + math.Sin(2*math.Pi*float64(i)/float64(n))
	}

	phi := SolvePoissonFFT1D(rho, 1.0, Epsilon0)

	mean := 0.0
	for _, v := range phi {
		mean += v
	}
	mean /= float64(n)
	if math.Abs(mean) > 1e-6 {
		t.Errorf("potential mean should vanish, got %g", mean)
	}
}

func TestSORConverges(t *testing.T) {
	s := NewSOR()
	rho := GaussianCharge(33, 0.1, 1e-8)

	phi, iters, err := s.Solve(rho, 1.0/32, Epsilon0)
	if err != nil {
		t.Fatalf("solve failed after %d sweeps: %v", iters, err)
	}
	if iters >= s.MaxIters {
		t.Errorf("expected convergence before the sweep budget, used %d", iters)
	}

	// Dirichlet boundaries stay at zero
	n := len(phi)
	for i := 0; i < n; i++ {
		if phi[0][i] != 0 || phi[n-1][i] != 0 || phi[i][0] != 0 || phi[i][n-1] != 0 {
			t.Fatal("boundary values must stay zero")
		}
	}

	// positive charge produces a positive interior potential
	if phi[n/2][n/2] <= 0 {
		t.Errorf("centre potential should be positive, got %g", phi[n/2][n/2])
	}
}

func TestSORResidual(t *testing.T) {
	s := &SOR{Tol: 1e-10, MaxIters: 50000}
	n := 17
	dx := 1.0 / float64(n-1)
	rho := GaussianCharge(n, 0.15, 1e-9)

	phi, _, err := s.Solve(rho, dx, Epsilon0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// check lap(phi) = -rho/eps0 away from the boundary
	h2 := dx * dx
	for j := 2; j < n-2; j++ {
		for i := 2; i < n-2; i++ {
			lap := (phi[j][i+1] + phi[j][i-1] + phi[j+1][i] + phi[j-1][i] - 4*phi[j][i]) / h2
			want := -rho[j][i] / Epsilon0
			if math.Abs(lap-want) > math.Abs(want)*1e-3+1e-6 {
				t.Fatalf("residual too large at (%d,%d): lap=%g want=%g", i, j, lap, want)
			}
		}
	}
}

func TestSORRejectsBadGrids(t *testing.T) {
	s := NewSOR()
	if _, _, err := s.Solve([][]float64{{0, 0, 0}}, 0.1, Epsilon0); err == nil {
		t.Error("expected error for too few rows")
	}
	ragged := [][]float64{{0, 0, 0}, {0, 0}, {0, 0, 0}}
	if _, _, err := s.Solve(ragged, 0.1, Epsilon0); err == nil {
		t.Error("expected error for ragged grid")
	}
}
