// Package store persists model runs: one directory per run holding
// metadata.json, the sampled series as series.csv and any rendered
// PNGs next to them.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fieldlab/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt,omitempty"`
	Duration  float64            `json:"duration,omitempty"`
	Columns   []string           `json:"columns"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// RunDir returns the directory backing a run, for placing plot files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func (s *Store) Save(model string, dt, duration float64, ds *sim.Dataset, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	columns := []string{ds.XLabel}
	for _, series := range ds.Series {
		columns = append(columns, series.Name)
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Columns:   columns,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return "", err
	}
	for i := range ds.X {
		row := make([]string, 0, len(columns))
		row = append(row, strconv.FormatFloat(ds.X[i], 'g', -1, 64))
		for _, series := range ds.Series {
			row = append(row, strconv.FormatFloat(series.Y[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads series.csv back into a dataset.
func (s *Store) LoadSeries(runID string) (*sim.Dataset, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("store: run %s has no data rows", runID)
	}

	header := records[0]
	ds := &sim.Dataset{XLabel: header[0]}
	cols := make([][]float64, len(header))
	for i := range cols {
		cols[i] = make([]float64, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("store: run %s: bad value %q", runID, cell)
			}
			cols[i] = append(cols[i], v)
		}
	}

	ds.X = cols[0]
	for i := 1; i < len(header); i++ {
		ds.Series = append(ds.Series, sim.Series{Name: header[i], Y: cols[i]})
	}
	return ds, nil
}
