package vtk

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

const vtiASCII = `<?xml version="1.0"?>
<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian">
  <ImageData WholeExtent="0 2 0 1 0 0" Origin="1 2 3" Spacing="0.5 0.5 1">
    <Piece Extent="0 2 0 1 0 0">
      <PointData Scalars="phi">
        <DataArray type="Float64" Name="phi" format="ascii">
          0 1 2 3 4 5
        </DataArray>
      </PointData>
    </Piece>
  </ImageData>
</VTKFile>
`

func TestReadXMLImageDataASCII(t *testing.T) {
	path := writeTemp(t, "grid.vti", vtiASCII)
	ds, err := ReadXML(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if ds.Dims != [3]int{3, 2, 1} {
		t.Errorf("dims: got %v", ds.Dims)
	}
	if ds.Origin != [3]float64{1, 2, 3} {
		t.Errorf("origin: got %v", ds.Origin)
	}
	if ds.Spacing != [3]float64{0.5, 0.5, 1} {
		t.Errorf("spacing: got %v", ds.Spacing)
	}

	f, err := ds.Field("phi")
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}
	if f.At(2, 1, 0) != 5 {
		t.Errorf("value order wrong: got %g", f.At(2, 1, 0))
	}
}

func TestReadXMLBase64(t *testing.T) {
	vals := []float32{1.5, -2.25, 3, 4, 0.125, 6}

	buf := make([]byte, 4+4*len(vals))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(4*len(vals)))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4+4*i:], math.Float32bits(v))
	}
	encoded := base64.StdEncoding.EncodeToString(buf)

	content := `<?xml version="1.0"?>
<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian">
  <ImageData WholeExtent="0 2 0 1 0 0" Origin="0 0 0" Spacing="1 1 1">
    <Piece Extent="0 2 0 1 0 0">
      <PointData Scalars="v">
        <DataArray type="Float32" Name="v" format="binary">` + encoded + `</DataArray>
      </PointData>
    </Piece>
  </ImageData>
</VTKFile>
`
	path := writeTemp(t, "grid.vti", content)
	ds, err := ReadXML(path)
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

func TestReadXMLStructuredGrid(t *testing.T) {
	content := `<?xml version="1.0"?>
<VTKFile type="StructuredGrid" version="0.1" byte_order="LittleEndian">
  <StructuredGrid WholeExtent="0 1 0 1 0 0">
    <Piece Extent="0 1 0 1 0 0">
      <Points>
        <DataArray type="Float64" NumberOfComponents="3" format="ascii">
          2 3 0  2.5 3 0  2 4 0  2.5 4 0
        </DataArray>
      </Points>
      <PointData Scalars="v">
        <DataArray type="Float64" Name="v" format="ascii">
          10 20 30 40
        </DataArray>
      </PointData>
    </Piece>
  </StructuredGrid>
</VTKFile>
`
	path := writeTemp(t, "grid.vts", content)
	ds, err := ReadXML(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if ds.Dims != [3]int{2, 2, 1} {
		t.Errorf("dims: got %v", ds.Dims)
	}
	if ds.Origin != [3]float64{2, 3, 0} {
		t.Errorf("origin recovered wrong: %v", ds.Origin)
	}
	if ds.Spacing[0] != 0.5 || ds.Spacing[1] != 1 {
		t.Errorf("spacing recovered wrong: %v", ds.Spacing)
	}

	f, _ := ds.Field("v")
	if f.At(1, 1, 0) != 40 {
		t.Errorf("value order wrong: got %g", f.At(1, 1, 0))
	}
}

func TestReadXMLRejectsCompressed(t *testing.T) {
	content := `<?xml version="1.0"?>
<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian" compressor="vtkZLibDataCompressor">
  <ImageData WholeExtent="0 1 0 1 0 0" Origin="0 0 0" Spacing="1 1 1">
    <Piece Extent="0 1 0 1 0 0">
      <PointData/>
    </Piece>
  </ImageData>
</VTKFile>
`
	path := writeTemp(t, "grid.vti", content)
	if _, err := ReadXML(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestReadXMLRejectsAppended(t *testing.T) {
	content := `<?xml version="1.0"?>
<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian">
  <ImageData WholeExtent="0 1 0 1 0 0" Origin="0 0 0" Spacing="1 1 1">
    <Piece Extent="0 1 0 1 0 0">
      <PointData Scalars="v">
        <DataArray type="Float64" Name="v" format="appended" offset="0"/>
      </PointData>
    </Piece>
  </ImageData>
</VTKFile>
`
	path := writeTemp(t, "grid.vti", content)
	if _, err := ReadXML(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
