package field

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNoSamples indicates an empty sample set.
	ErrNoSamples = errors.New("field: no samples to resample")

	// ErrNotLattice indicates samples that do not lie on a regular
	// lattice; the resampler does not triangulate arbitrary clouds.
	ErrNotLattice = errors.New("field: samples do not form a regular lattice")

	// ErrBadResolution indicates a target resolution below 2x2.
	ErrBadResolution = errors.New("field: resolution must be at least 2")
)

// Sample is one scattered observation.
type Sample struct {
	X, Y, V float64
}

// latticeTol is the coordinate snap tolerance, relative to spacing.
const latticeTol = 1e-9

// Resample interpolates scattered samples onto a regular rx x ry grid
// spanning the sample hull, bilinearly. Samples must lie on a regular
// lattice (which every structured-grid slice does); lattice cells with
// no sample, and target cells outside the hull, come out NaN.
// Resampling at the native resolution reproduces the input exactly.
func Resample(samples []Sample, rx, ry int) (*Slice2D, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if rx < 2 || ry < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadResolution, rx, ry)
	}

	xs := uniqueSorted(samples, func(s Sample) float64 { return s.X })
	ys := uniqueSorted(samples, func(s Sample) float64 { return s.Y })
	if len(xs) < 2 || len(ys) < 2 {
		return nil, fmt.Errorf("%w: degenerate extent %dx%d", ErrNotLattice, len(xs), len(ys))
	}
	if !uniform(xs) || !uniform(ys) {
		return nil, fmt.Errorf("%w: coordinates not evenly spaced", ErrNotLattice)
	}

	// Snap every sample onto the lattice; reject off-lattice points.
	grid := make([]float64, len(xs)*len(ys))
	for i := range grid {
		grid[i] = math.NaN()
	}
	for _, s := range samples {
		i, okx := locate(xs, s.X)
		j, oky := locate(ys, s.Y)
		if !okx || !oky {
			return nil, fmt.Errorf("%w: sample (%g, %g) off lattice", ErrNotLattice, s.X, s.Y)
		}
		grid[i+len(xs)*j] = s.V
	}

	src := &Slice2D{
		Nx: len(xs), Ny: len(ys),
		X0: xs[0], Y0: ys[0],
		Dx: (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1),
		Dy: (ys[len(ys)-1] - ys[0]) / float64(len(ys)-1),
		Data: grid,
	}
	return src.Resample(rx, ry)
}

// Resample bilinearly interpolates the slice onto an rx x ry grid over
// the same physical extent. NaN cells poison the four surrounding
// target cells, matching linear interpolation with missing data.
func (s *Slice2D) Resample(rx, ry int) (*Slice2D, error) {
	if rx < 2 || ry < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadResolution, rx, ry)
	}
	if s.Nx < 2 || s.Ny < 2 {
		return nil, fmt.Errorf("%w: source %dx%d", ErrNotLattice, s.Nx, s.Ny)
	}

	width := float64(s.Nx-1) * s.Dx
	height := float64(s.Ny-1) * s.Dy
	out := &Slice2D{
		Nx: rx, Ny: ry,
		X0: s.X0, Y0: s.Y0,
		Dx: width / float64(rx-1), Dy: height / float64(ry-1),
		XLabel: s.XLabel, YLabel: s.YLabel,
		Data: make([]float64, rx*ry),
	}

	for j := 0; j < ry; j++ {
		// fractional source row
		fy := float64(j) * float64(s.Ny-1) / float64(ry-1)
		j0 := int(fy)
		if j0 >= s.Ny-1 {
			j0 = s.Ny - 2
		}
		ty := fy - float64(j0)
		for i := 0; i < rx; i++ {
			fx := float64(i) * float64(s.Nx-1) / float64(rx-1)
			i0 := int(fx)
			if i0 >= s.Nx-1 {
				i0 = s.Nx - 2
			}
			tx := fx - float64(i0)

			v00 := s.At(i0, j0)
			v10 := s.At(i0+1, j0)
			v01 := s.At(i0, j0+1)
			v11 := s.At(i0+1, j0+1)

			var v float64
			switch {
			case tx == 0 && ty == 0:
				v = v00
			case tx == 0:
				v = v00 + ty*(v01-v00)
			case ty == 0:
				v = v00 + tx*(v10-v00)
			default:
				top := v00 + tx*(v10-v00)
				bot := v01 + tx*(v11-v01)
				v = top + ty*(bot-top)
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func uniqueSorted(samples []Sample, get func(Sample) float64) []float64 {
	vals := make([]float64, len(samples))
	for i, s := range samples {
		vals[i] = get(s)
	}
	sort.Float64s(vals)

	span := vals[len(vals)-1] - vals[0]
	tol := latticeTol * math.Max(span, 1)
	out := vals[:1]
	for _, v := range vals[1:] {
		if v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}

// uniform reports whether the sorted coords are evenly spaced.
func uniform(coords []float64) bool {
	span := coords[len(coords)-1] - coords[0]
	dx := span / float64(len(coords)-1)
	tol := latticeTol * math.Max(span, 1)
	for i, v := range coords {
		if math.Abs(v-(coords[0]+float64(i)*dx)) > tol {
			return false
		}
	}
	return true
}

// locate finds v in the sorted coords within tolerance.
func locate(coords []float64, v float64) (int, bool) {
	span := coords[len(coords)-1] - coords[0]
	tol := latticeTol * math.Max(span, 1)
	i := sort.SearchFloat64s(coords, v-tol)
	if i < len(coords) && math.Abs(coords[i]-v) <= tol {
		return i, true
	}
	return 0, false
}
