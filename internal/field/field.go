// Package field holds the structured scalar field type and the slice
// extraction, resampling and statistics steps of the viewer pipeline.
package field

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexRange indicates a slice index outside [0, N_axis).
	ErrIndexRange = errors.New("field: slice index out of range")

	// ErrBadAxis indicates an axis name other than x, y or z.
	ErrBadAxis = errors.New("field: unknown axis")

	// ErrDataSize indicates data length inconsistent with dimensions.
	ErrDataSize = errors.New("field: data length does not match dimensions")
)

// Axis selects the slicing direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadAxis, s)
}

// ScalarField3D is an immutable scalar field on a structured grid.
// Data is stored x-fastest (VTK point order): index = i + Nx*(j + Ny*k).
type ScalarField3D struct {
	Name    string
	Dims    [3]int
	Spacing [3]float64
	Origin  [3]float64
	Data    []float64
}

// New validates dimensions against the data length.
func New(name string, dims [3]int, spacing, origin [3]float64, data []float64) (*ScalarField3D, error) {
	n := dims[0] * dims[1] * dims[2]
	if n <= 0 || len(data) != n {
		return nil, fmt.Errorf("%w: dims %v need %d values, got %d", ErrDataSize, dims, n, len(data))
	}
	return &ScalarField3D{Name: name, Dims: dims, Spacing: spacing, Origin: origin, Data: data}, nil
}

func (f *ScalarField3D) At(i, j, k int) float64 {
	return f.Data[i+f.Dims[0]*(j+f.Dims[1]*k)]
}

// Is3D reports whether the field has more than one layer along every
// axis.
func (f *ScalarField3D) Is3D() bool {
	return f.Dims[0] > 1 && f.Dims[1] > 1 && f.Dims[2] > 1
}

// MaxSliceIndex is the largest valid index along axis.
func (f *ScalarField3D) MaxSliceIndex(axis Axis) int {
	return f.Dims[axis] - 1
}

// MidSliceIndex is the default slice position.
func (f *ScalarField3D) MidSliceIndex(axis Axis) int {
	return f.Dims[axis] / 2
}

// Slice2D is one plane of a field: a regular 2D grid with physical
// coordinates along the two surviving axes.
type Slice2D struct {
	Nx, Ny         int
	X0, Y0         float64
	Dx, Dy         float64
	XLabel, YLabel string
	Data           []float64 // row-major, x-fastest
}

func (s *Slice2D) At(i, j int) float64     { return s.Data[i+s.Nx*j] }
func (s *Slice2D) Set(i, j int, v float64) { s.Data[i+s.Nx*j] = v }

// XCoord and YCoord map grid indices to physical coordinates.
func (s *Slice2D) XCoord(i int) float64 { return s.X0 + float64(i)*s.Dx }
func (s *Slice2D) YCoord(j int) float64 { return s.Y0 + float64(j)*s.Dy }

// Slice extracts the plane at index along axis. The output shape is
// the field's dimensions with the sliced axis removed; axis labels
// follow the surviving axes in x,y,z order.
func (f *ScalarField3D) Slice(axis Axis, index int) (*Slice2D, error) {
	if index < 0 || index >= f.Dims[axis] {
		return nil, fmt.Errorf("%w: axis %s index %d, valid range [0,%d)", ErrIndexRange, axis, index, f.Dims[axis])
	}

	var ai, aj int // surviving axes, in x,y,z order
	switch axis {
	case AxisX:
		ai, aj = 1, 2
	case AxisY:
		ai, aj = 0, 2
	case AxisZ:
		ai, aj = 0, 1
	}

	s := &Slice2D{
		Nx:     f.Dims[ai],
		Ny:     f.Dims[aj],
		X0:     f.Origin[ai],
		Y0:     f.Origin[aj],
		Dx:     f.Spacing[ai],
		Dy:     f.Spacing[aj],
		XLabel: Axis(ai).String(),
		YLabel: Axis(aj).String(),
		Data:   make([]float64, f.Dims[ai]*f.Dims[aj]),
	}

	idx := [3]int{}
	idx[axis] = index
	for j := 0; j < s.Ny; j++ {
		idx[aj] = j
		for i := 0; i < s.Nx; i++ {
			idx[ai] = i
			s.Set(i, j, f.At(idx[0], idx[1], idx[2]))
		}
	}
	return s, nil
}

// Samples flattens the slice into scattered (x, y, value) triples, the
// form the resampler consumes.
func (s *Slice2D) Samples() []Sample {
	out := make([]Sample, 0, len(s.Data))
	for j := 0; j < s.Ny; j++ {
		for i := 0; i < s.Nx; i++ {
			out = append(out, Sample{X: s.XCoord(i), Y: s.YCoord(j), V: s.At(i, j)})
		}
	}
	return out
}
