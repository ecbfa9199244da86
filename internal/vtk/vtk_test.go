package vtk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const legacySample = `# vtk DataFile Version 3.0
test grid
ASCII
DATASET STRUCTURED_POINTS
DIMENSIONS 3 2 2
SPACING 0.5 1.0 2.0
ORIGIN 1.0 2.0 3.0
POINT_DATA 12
SCALARS temperature double 1
LOOKUP_TABLE default
0 1 2 3 4 5
6 7 8 9 10 11
SCALARS pressure float 1
LOOKUP_TABLE default
11 10 9 8 7 6
5 4 3 2 1 0
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadLegacyStructuredPoints(t *testing.T) {
	path := writeTemp(t, "grid.vtk", legacySample)
	ds, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if ds.Dims != [3]int{3, 2, 2} {
		t.Errorf("dims: got %v", ds.Dims)
	}
	if ds.Spacing != [3]float64{0.5, 1.0, 2.0} {
		t.Errorf("spacing: got %v", ds.Spacing)
	}
	if ds.Origin != [3]float64{1.0, 2.0, 3.0} {
		t.Errorf("origin: got %v", ds.Origin)
	}

	names := ds.ArrayNames()
	if len(names) != 2 || names[0] != "temperature" || names[1] != "pressure" {
		t.Fatalf("array names: got %v", names)
	}

	f, err := ds.Field("temperature")
	if err != nil {
		t.Fatalf("field lookup failed: %v", err)
	}
	if f.At(1, 0, 0) != 1 || f.At(0, 1, 0) != 3 || f.At(0, 0, 1) != 6 {
		t.Errorf("point order wrong: %g %g %g", f.At(1, 0, 0), f.At(0, 1, 0), f.At(0, 0, 1))
	}

	// empty name selects the first array
	first, err := ds.Field("")
	if err != nil {
		t.Fatalf("default field failed: %v", err)
	}
	if first.Name != "temperature" {
		t.Errorf("default array: got %s", first.Name)
	}
}

func TestReadLegacyMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"no header":     "not a vtk file\n",
		"short data":    "# vtk DataFile Version 3.0\nt\nASCII\nDATASET STRUCTURED_POINTS\nDIMENSIONS 2 2 1\nSPACING 1 1 1\nORIGIN 0 0 0\nPOINT_DATA 4\nSCALARS v double 1\nLOOKUP_TABLE default\n1 2\n",
	}
	for name, content := range cases {
		path := writeTemp(t, "bad.vtk", content)
		if _, err := ReadLegacy(path); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestReadLegacyBinary(t *testing.T) {
	vals := []float32{0.5, -1.25, 2, 3, 4.5, -6}

	var buf bytes.Buffer
	buf.WriteString("# vtk DataFile Version 3.0\n")
	buf.WriteString("binary grid\n")
	buf.WriteString("BINARY\n")
	buf.WriteString("DATASET STRUCTURED_POINTS\n")
	buf.WriteString("DIMENSIONS 3 2 1\n")
	buf.WriteString("SPACING 1 1 1\n")
	buf.WriteString("ORIGIN 0 0 0\n")
	buf.WriteString("POINT_DATA 6\n")
	buf.WriteString("SCALARS v float 1\n")
	buf.WriteString("LOOKUP_TABLE default\n")
	if err := binary.Write(&buf, binary.BigEndian, vals); err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	buf.WriteString("\n")

	path := writeTemp(t, "binary.vtk", buf.String())
	ds, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	f, err := ds.Field("v")
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}
	for i, want := range vals {
		if f.Data[i] != float64(want) {
			t.Errorf("value %d: got %g, expected %g", i, f.Data[i], want)
		}
	}
}

func TestReadLegacyBinaryDouble(t *testing.T) {
	vals := []float64{1e-7, -2.5, 3.25, 1e9}

	var buf bytes.Buffer
	buf.WriteString("# vtk DataFile Version 3.0\n")
	buf.WriteString("binary doubles\n")
	buf.WriteString("BINARY\n")
	buf.WriteString("DATASET STRUCTURED_POINTS\n")
	buf.WriteString("DIMENSIONS 2 2 1\n")
	buf.WriteString("SPACING 1 1 1\n")
	buf.WriteString("ORIGIN 0 0 0\n")
	buf.WriteString("POINT_DATA 4\n")
	buf.WriteString("SCALARS v double 1\n")
	buf.WriteString("LOOKUP_TABLE default\n")
	if err := binary.Write(&buf, binary.BigEndian, vals); err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	buf.WriteString("\n")

	path := writeTemp(t, "binary.vtk", buf.String())
	ds, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	f, err := ds.Field("v")
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}
	for i, want := range vals {
		if f.Data[i] != want {
			t.Errorf("value %d: got %g, expected %g", i, f.Data[i], want)
		}
	}
}

func TestReadLegacyStructuredGrid(t *testing.T) {
	content := `# vtk DataFile Version 3.0
structured grid
ASCII
DATASET STRUCTURED_GRID
DIMENSIONS 3 2 1
POINTS 6 double
1 2 0  2 2 0  3 2 0
1 4 0  2 4 0  3 4 0
POINT_DATA 6
SCALARS v double 1
LOOKUP_TABLE default
10 20 30 40 50 60
`
	path := writeTemp(t, "grid.vtk", content)
	ds, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if ds.Dims != [3]int{3, 2, 1} {
		t.Errorf("dims: got %v", ds.Dims)
	}
	if ds.Origin != [3]float64{1, 2, 0} {
		t.Errorf("origin recovered wrong: %v", ds.Origin)
	}
	if ds.Spacing != [3]float64{1, 2, 1} {
		t.Errorf("spacing recovered wrong: %v", ds.Spacing)
	}

	f, err := ds.Field("v")
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}
	if f.At(2, 0, 0) != 30 || f.At(0, 1, 0) != 40 {
		t.Errorf("value order wrong: %g %g", f.At(2, 0, 0), f.At(0, 1, 0))
	}
}

func TestFieldUnknownArray(t *testing.T) {
	path := writeTemp(t, "grid.vtk", legacySample)
	ds, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if _, err := ds.Field("missing"); !errors.Is(err, ErrUnknownArray) {
		t.Errorf("expected ErrUnknownArray, got %v", err)
	}
}

func TestOpenDispatch(t *testing.T) {
	if _, err := Open("file.stl"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for unknown extension, got %v", err)
	}
}

func TestWriteVTIRoundTrip(t *testing.T) {
	src := GenerateSample3D(6, 5, 4, 0.02, 7)
	path := filepath.Join(t.TempDir(), "sample.vti")

	if err := WriteVTI(path, src); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	if got.Dims != src.Dims {
		t.Errorf("dims: got %v, expected %v", got.Dims, src.Dims)
	}
	for c := 0; c < 3; c++ {
		if math.Abs(got.Spacing[c]-src.Spacing[c]) > 1e-12 {
			t.Errorf("spacing[%d]: got %g, expected %g", c, got.Spacing[c], src.Spacing[c])
		}
	}

	for _, name := range src.ArrayNames() {
		want, _ := src.Field(name)
		have, err := got.Field(name)
		if err != nil {
			t.Fatalf("array %s missing after round trip: %v", name, err)
		}
		for i := range want.Data {
			if want.Data[i] != have.Data[i] {
				t.Fatalf("array %s differs at %d: %g vs %g", name, i, want.Data[i], have.Data[i])
			}
		}
	}
}

func TestWriteLegacyRoundTrip(t *testing.T) {
	src := GenerateSample2D(8, 6, 0.01, 3)
	path := filepath.Join(t.TempDir(), "sample.vtk")

	if err := WriteLegacyASCII(path, "sample grid", src); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	if got.Dims != src.Dims {
		t.Errorf("dims: got %v, expected %v", got.Dims, src.Dims)
	}
	want, _ := src.Field("potential")
	have, err := got.Field("potential")
	if err != nil {
		t.Fatalf("array missing: %v", err)
	}
	for i := range want.Data {
		if want.Data[i] != have.Data[i] {
			t.Fatalf("value differs at %d: %g vs %g", i, want.Data[i], have.Data[i])
		}
	}
}

func TestGenerateSampleDeterministic(t *testing.T) {
	a := GenerateSample3D(5, 5, 5, 0.1, 99)
	b := GenerateSample3D(5, 5, 5, 0.1, 99)

	fa, _ := a.Field("temperature")
	fb, _ := b.Field("temperature")
	for i := range fa.Data {
		if fa.Data[i] != fb.Data[i] {
			t.Fatalf("same seed should reproduce values, differ at %d", i)
		}
	}

	c := GenerateSample3D(5, 5, 5, 0.1, 100)
	fc, _ := c.Field("temperature")
	same := true
	for i := range fa.Data {
		if fa.Data[i] != fc.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should change the noise")
	}
}

func TestAddArrayLengthCheck(t *testing.T) {
	ds := NewDataset([3]int{2, 2, 2}, [3]float64{1, 1, 1}, [3]float64{0, 0, 0})
	if err := ds.AddArray("v", make([]float64, 7)); err == nil {
		t.Error("expected length mismatch error")
	}
	if err := ds.AddArray("v", make([]float64, 8)); err != nil {
		t.Errorf("valid array rejected: %v", err)
	}
}
