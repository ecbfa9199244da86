package viewer

import (
	"sync"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/vtk"
)

type viewKey struct {
	path       string
	array      string
	axis       field.Axis
	index      int
	resolution int
	mtime      int64
}

type fileEntry struct {
	mtime int64
	ds    *vtk.Dataset
}

// cache memoises parsed datasets and rendered views. Entries are
// immutable once stored; two goroutines racing on a miss both compute
// and one write wins, which is wasteful but correct.
type cache struct {
	mu    sync.RWMutex
	views map[viewKey]*View
	files map[string]*fileEntry
}

func newCache() *cache {
	return &cache{
		views: make(map[viewKey]*View),
		files: make(map[string]*fileEntry),
	}
}

func (c *cache) view(key viewKey) (*View, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.views[key]
	return v, ok
}

func (c *cache) putView(key viewKey, v *View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// a new mtime for the file supersedes all older slices of it
	for k := range c.views {
		if k.path == key.path && k.mtime != key.mtime {
			delete(c.views, k)
		}
	}
	c.views[key] = v
}

// dataset returns the parsed file, reparsing when mtime moved.
func (c *cache) dataset(path string, mtime int64) (*vtk.Dataset, error) {
	c.mu.RLock()
	entry, ok := c.files[path]
	c.mu.RUnlock()
	if ok && entry.mtime == mtime {
		return entry.ds, nil
	}

	ds, err := vtk.Open(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.files[path] = &fileEntry{mtime: mtime, ds: ds}
	c.mu.Unlock()
	return ds, nil
}

func (c *cache) invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	for k := range c.views {
		if k.path == path {
			delete(c.views, k)
		}
	}
}
