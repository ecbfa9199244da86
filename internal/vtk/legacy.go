package vtk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadLegacy parses a legacy-format .vtk file. ASCII and big-endian
// BINARY point data are supported for STRUCTURED_POINTS and
// STRUCTURED_GRID datasets; for structured grids the origin and
// spacing are recovered from the point coordinates, which must form a
// uniform lattice.
func ReadLegacy(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &legacyParser{data: raw}

	// header: version comment, title, format
	if line, _ := p.nextLine(); !strings.HasPrefix(line, "# vtk DataFile") {
		return nil, fmt.Errorf("%w: missing '# vtk DataFile' header", ErrMalformed)
	}
	p.nextLine() // title, free text

	format, ok := p.nextLine()
	if !ok {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	switch strings.TrimSpace(format) {
	case "ASCII":
		p.binary = false
	case "BINARY":
		p.binary = true
	default:
		return nil, fmt.Errorf("%w: format %q", ErrMalformed, format)
	}

	dsLine, ok := p.nextLine()
	if !ok {
		return nil, fmt.Errorf("%w: missing DATASET line", ErrMalformed)
	}
	fields := strings.Fields(dsLine)
	if len(fields) != 2 || fields[0] != "DATASET" {
		return nil, fmt.Errorf("%w: bad DATASET line %q", ErrMalformed, dsLine)
	}

	switch fields[1] {
	case "STRUCTURED_POINTS":
		return p.readStructuredPoints()
	case "STRUCTURED_GRID":
		return p.readStructuredGrid()
	default:
		return nil, fmt.Errorf("%w: dataset type %s", ErrUnsupported, fields[1])
	}
}

type legacyParser struct {
	data   []byte
	pos    int
	binary bool
}

func (p *legacyParser) nextLine() (string, bool) {
	for p.pos < len(p.data) {
		end := bytes.IndexByte(p.data[p.pos:], '\n')
		var line string
		if end < 0 {
			line = string(p.data[p.pos:])
			p.pos = len(p.data)
		} else {
			line = string(p.data[p.pos : p.pos+end])
			p.pos += end + 1
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
	return "", false
}

func (p *legacyParser) readStructuredPoints() (*Dataset, error) {
	var dims [3]int
	spacing := [3]float64{1, 1, 1}
	origin := [3]float64{}
	haveDims := false

	for {
		line, ok := p.nextLine()
		if !ok {
			return nil, fmt.Errorf("%w: missing POINT_DATA section", ErrMalformed)
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "DIMENSIONS":
			if err := parseInts(fields[1:], dims[:]); err != nil {
				return nil, err
			}
			haveDims = true
		case "SPACING", "ASPECT_RATIO":
			if err := parseFloats(fields[1:], spacing[:]); err != nil {
				return nil, err
			}
		case "ORIGIN":
			if err := parseFloats(fields[1:], origin[:]); err != nil {
				return nil, err
			}
		case "POINT_DATA":
			if !haveDims {
				return nil, fmt.Errorf("%w: POINT_DATA before DIMENSIONS", ErrMalformed)
			}
			ds := NewDataset(dims, spacing, origin)
			return ds, p.readPointData(ds, fields)
		case "CELL_DATA":
			return nil, fmt.Errorf("%w: cell data", ErrUnsupported)
		default:
			return nil, fmt.Errorf("%w: unexpected keyword %q", ErrMalformed, fields[0])
		}
	}
}

func (p *legacyParser) readStructuredGrid() (*Dataset, error) {
	var dims [3]int
	var pts []float64

	for {
		line, ok := p.nextLine()
		if !ok {
			return nil, fmt.Errorf("%w: missing POINT_DATA section", ErrMalformed)
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "DIMENSIONS":
			if err := parseInts(fields[1:], dims[:]); err != nil {
				return nil, err
			}
		case "POINTS":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: bad POINTS line %q", ErrMalformed, line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: POINTS count %q", ErrMalformed, fields[1])
			}
			pts, err = p.readValues(3*n, fields[2])
			if err != nil {
				return nil, err
			}
		case "POINT_DATA":
			origin, spacing, err := lattice(dims, pts)
			if err != nil {
				return nil, err
			}
			ds := NewDataset(dims, spacing, origin)
			return ds, p.readPointData(ds, fields)
		case "CELL_DATA":
			return nil, fmt.Errorf("%w: cell data", ErrUnsupported)
		default:
			return nil, fmt.Errorf("%w: unexpected keyword %q", ErrMalformed, fields[0])
		}
	}
}

// lattice recovers origin and spacing from structured-grid points.
func lattice(dims [3]int, pts []float64) ([3]float64, [3]float64, error) {
	n := dims[0] * dims[1] * dims[2]
	if n <= 0 || len(pts) != 3*n {
		return [3]float64{}, [3]float64{}, fmt.Errorf("%w: %d points for dims %v", ErrMalformed, len(pts)/3, dims)
	}
	origin := [3]float64{pts[0], pts[1], pts[2]}
	spacing := [3]float64{1, 1, 1}
	strides := [3]int{1, dims[0], dims[0] * dims[1]}
	for a := 0; a < 3; a++ {
		if dims[a] > 1 {
			spacing[a] = pts[3*strides[a]+a] - origin[a]
		}
	}
	return origin, spacing, nil
}

// readPointData parses consecutive SCALARS blocks until the file ends.
func (p *legacyParser) readPointData(ds *Dataset, pdFields []string) error {
	if len(pdFields) != 2 {
		return fmt.Errorf("%w: bad POINT_DATA line", ErrMalformed)
	}
	n, err := strconv.Atoi(pdFields[1])
	if err != nil || n != ds.NumPoints() {
		return fmt.Errorf("%w: POINT_DATA %s does not match grid size %d", ErrMalformed, pdFields[1], ds.NumPoints())
	}

	for {
		line, ok := p.nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "SCALARS":
			if len(fields) < 3 {
				return fmt.Errorf("%w: bad SCALARS line %q", ErrMalformed, line)
			}
			name, typ := fields[1], fields[2]
			comps := 1
			if len(fields) == 4 {
				comps, err = strconv.Atoi(fields[3])
				if err != nil {
					return fmt.Errorf("%w: SCALARS components %q", ErrMalformed, fields[3])
				}
			}
			if comps != 1 {
				return fmt.Errorf("%w: %d-component scalars", ErrUnsupported, comps)
			}

			// optional LOOKUP_TABLE line precedes the values
			save := p.pos
			if lt, ok := p.nextLine(); !ok || !strings.HasPrefix(lt, "LOOKUP_TABLE") {
				p.pos = save
			}

			vals, err := p.readValues(n, typ)
			if err != nil {
				return fmt.Errorf("array %q: %w", name, err)
			}
			if err := ds.AddArray(name, vals); err != nil {
				return err
			}
		case "VECTORS", "TENSORS", "NORMALS", "FIELD":
			return fmt.Errorf("%w: %s point data", ErrUnsupported, fields[0])
		case "LOOKUP_TABLE":
			// table definition bodies are skipped
			continue
		default:
			return fmt.Errorf("%w: unexpected keyword %q in point data", ErrMalformed, fields[0])
		}
	}
	if len(ds.names) == 0 {
		return ErrNoArrays
	}
	return nil
}

// readValues reads n scalars of the given VTK type, ascii tokens or
// big-endian binary depending on the file format.
func (p *legacyParser) readValues(n int, typ string) ([]float64, error) {
	if p.binary {
		return p.readBinaryValues(n, typ)
	}
	out := make([]float64, 0, n)
	for len(out) < n {
		line, ok := p.nextLine()
		if !ok {
			return nil, fmt.Errorf("%w: expected %d values, got %d", ErrMalformed, n, len(out))
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: value %q", ErrMalformed, tok)
			}
			out = append(out, v)
			if len(out) == n {
				break
			}
		}
	}
	return out, nil
}

func (p *legacyParser) readBinaryValues(n int, typ string) ([]float64, error) {
	size, ok := typeSize(typ)
	if !ok {
		return nil, fmt.Errorf("%w: binary type %s", ErrUnsupported, typ)
	}
	need := n * size
	if p.pos+need > len(p.data) {
		return nil, fmt.Errorf("%w: truncated binary block", ErrMalformed)
	}
	buf := p.data[p.pos : p.pos+need]
	p.pos += need
	// binary legacy payloads are big-endian, then a trailing newline
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b := buf[i*size : (i+1)*size]
		switch typ {
		case "float":
			out[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(b)))
		case "double":
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(b))
		case "int":
			out[i] = float64(int32(binary.BigEndian.Uint32(b)))
		case "short":
			out[i] = float64(int16(binary.BigEndian.Uint16(b)))
		case "unsigned_char":
			out[i] = float64(b[0])
		}
	}
	return out, nil
}

func typeSize(typ string) (int, bool) {
	switch typ {
	case "float", "int":
		return 4, true
	case "double":
		return 8, true
	case "short":
		return 2, true
	case "unsigned_char":
		return 1, true
	}
	return 0, false
}

func parseInts(fields []string, out []int) error {
	if len(fields) != len(out) {
		return fmt.Errorf("%w: expected %d ints, got %d", ErrMalformed, len(out), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("%w: integer %q", ErrMalformed, f)
		}
		out[i] = v
	}
	return nil
}

func parseFloats(fields []string, out []float64) error {
	if len(fields) != len(out) {
		return fmt.Errorf("%w: expected %d floats, got %d", ErrMalformed, len(out), len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%w: float %q", ErrMalformed, f)
		}
		out[i] = v
	}
	return nil
}
