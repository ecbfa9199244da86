// Package vtk reads and writes structured-grid VTK files: legacy
// ASCII/binary .vtk (STRUCTURED_POINTS and STRUCTURED_GRID) and XML
// .vti/.vts with inline ascii or base64 point-data arrays. Appended
// and compressed XML blocks are not supported.
package vtk

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/fieldlab/internal/field"
)

var (
	// ErrMalformed indicates a file that does not parse as VTK.
	ErrMalformed = errors.New("vtk: malformed file")

	// ErrUnsupported indicates a valid VTK feature this reader does
	// not handle (unstructured grids, appended data, compression).
	ErrUnsupported = errors.New("vtk: unsupported feature")

	// ErrNoArrays indicates a file with no scalar point-data arrays.
	ErrNoArrays = errors.New("vtk: no scalar arrays found")

	// ErrUnknownArray indicates a request for an array name not in
	// the file.
	ErrUnknownArray = errors.New("vtk: unknown array")
)

// Dataset is one structured grid with its named point-data arrays,
// in file order.
type Dataset struct {
	Dims    [3]int
	Spacing [3]float64
	Origin  [3]float64

	names  []string
	arrays map[string][]float64
}

func NewDataset(dims [3]int, spacing, origin [3]float64) *Dataset {
	return &Dataset{
		Dims:    dims,
		Spacing: spacing,
		Origin:  origin,
		arrays:  make(map[string][]float64),
	}
}

func (d *Dataset) NumPoints() int {
	return d.Dims[0] * d.Dims[1] * d.Dims[2]
}

// AddArray registers a point-data array; length must match the grid.
func (d *Dataset) AddArray(name string, data []float64) error {
	if len(data) != d.NumPoints() {
		return fmt.Errorf("%w: array %q has %d values, grid has %d points",
			ErrMalformed, name, len(data), d.NumPoints())
	}
	if _, dup := d.arrays[name]; !dup {
		d.names = append(d.names, name)
	}
	d.arrays[name] = data
	return nil
}

// ArrayNames lists arrays in file order.
func (d *Dataset) ArrayNames() []string { return d.names }

// Field returns the named array as a scalar field; an empty name
// selects the first array in the file.
func (d *Dataset) Field(name string) (*field.ScalarField3D, error) {
	if len(d.names) == 0 {
		return nil, ErrNoArrays
	}
	if name == "" {
		name = d.names[0]
	}
	data, ok := d.arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownArray, name, d.names)
	}
	return field.New(name, d.Dims, d.Spacing, d.Origin, data)
}

// Open reads a VTK file, dispatching on extension.
func Open(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtk":
		return ReadLegacy(path)
	case ".vti", ".vts":
		return ReadXML(path)
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupported, filepath.Ext(path))
	}
}
