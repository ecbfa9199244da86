// Package viewer ties the pipeline together: open a VTK file, pick a
// scalar array, extract a slice, resample it and summarise it. Results
// are cached per (file, array, axis, index, resolution) and the cache
// is keyed on file modification time, so a rewritten file invalidates
// every entry wholesale.
package viewer

import (
	"fmt"
	"os"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/vtk"
)

// Request names one rendered slice.
type Request struct {
	Path       string
	Array      string // empty selects the file's first array
	Axis       field.Axis
	Index      int // negative selects the middle slice
	Resolution int // 0 keeps the native resolution
}

// View is an immutable rendered slice plus its statistics.
type View struct {
	Slice *field.Slice2D
	Stats field.Stats
	Array string
	Axis  field.Axis
	Index int
}

type Viewer struct {
	cache *cache
}

func New() *Viewer {
	return &Viewer{cache: newCache()}
}

// Render produces the requested view, serving repeats from cache.
// An explicit out-of-range index is an error; the caller clamps.
func (v *Viewer) Render(req Request) (*View, error) {
	fi, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	mtime := fi.ModTime().UnixNano()

	key := viewKey{
		path:       req.Path,
		array:      req.Array,
		axis:       req.Axis,
		index:      req.Index,
		resolution: req.Resolution,
		mtime:      mtime,
	}
	if view, ok := v.cache.view(key); ok {
		return view, nil
	}

	ds, err := v.cache.dataset(req.Path, mtime)
	if err != nil {
		return nil, err
	}
	f, err := ds.Field(req.Array)
	if err != nil {
		return nil, err
	}

	index := req.Index
	if index < 0 {
		index = f.MidSliceIndex(req.Axis)
	}
	s, err := f.Slice(req.Axis, index)
	if err != nil {
		return nil, err
	}

	if req.Resolution > 0 && (req.Resolution != s.Nx || req.Resolution != s.Ny) {
		s, err = s.Resample(req.Resolution, req.Resolution)
		if err != nil {
			return nil, err
		}
	}

	view := &View{
		Slice: s,
		Stats: field.ComputeStats(s.Data),
		Array: f.Name,
		Axis:  req.Axis,
		Index: index,
	}
	v.cache.putView(key, view)
	return view, nil
}

// Describe opens the file without rendering, for the info surface.
func (v *Viewer) Describe(path string) (*vtk.Dataset, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	return v.cache.dataset(path, fi.ModTime().UnixNano())
}

// Invalidate drops every cached entry for the file.
func (v *Viewer) Invalidate(path string) {
	v.cache.invalidate(path)
}
