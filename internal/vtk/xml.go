package vtk

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadXML parses a .vti (ImageData) or .vts (StructuredGrid) file with
// inline ascii or base64 data arrays. Only the first piece is read.
func ReadXML(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file xmlFile
	if err := xml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if file.Compressor != "" {
		return nil, fmt.Errorf("%w: compressed data (%s)", ErrUnsupported, file.Compressor)
	}

	dec := &xmlDecoder{
		littleEndian: file.ByteOrder != "BigEndian",
		headerSize:   4,
	}
	if file.HeaderType == "UInt64" {
		dec.headerSize = 8
	}

	switch {
	case file.ImageData != nil:
		return readImageData(file.ImageData, dec)
	case file.StructuredGrid != nil:
		return readStructuredGridXML(file.StructuredGrid, dec)
	default:
		return nil, fmt.Errorf("%w: VTKFile type %q", ErrUnsupported, file.Type)
	}
}

type xmlFile struct {
	XMLName        xml.Name           `xml:"VTKFile"`
	Type           string             `xml:"type,attr"`
	ByteOrder      string             `xml:"byte_order,attr"`
	HeaderType     string             `xml:"header_type,attr"`
	Compressor     string             `xml:"compressor,attr"`
	ImageData      *xmlImageData      `xml:"ImageData"`
	StructuredGrid *xmlStructuredGrid `xml:"StructuredGrid"`
}

type xmlImageData struct {
	WholeExtent string     `xml:"WholeExtent,attr"`
	Origin      string     `xml:"Origin,attr"`
	Spacing     string     `xml:"Spacing,attr"`
	Pieces      []xmlPiece `xml:"Piece"`
}

type xmlStructuredGrid struct {
	WholeExtent string     `xml:"WholeExtent,attr"`
	Pieces      []xmlPiece `xml:"Piece"`
}

type xmlPiece struct {
	Extent    string        `xml:"Extent,attr"`
	PointData xmlArrayGroup `xml:"PointData"`
	Points    xmlArrayGroup `xml:"Points"`
}

type xmlArrayGroup struct {
	Arrays []xmlDataArray `xml:"DataArray"`
}

type xmlDataArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr"`
	Format     string `xml:"format,attr"`
	Components string `xml:"NumberOfComponents,attr"`
	Value      string `xml:",chardata"`
}

func readImageData(img *xmlImageData, dec *xmlDecoder) (*Dataset, error) {
	dims, err := extentDims(img.WholeExtent)
	if err != nil {
		return nil, err
	}
	origin, spacing := [3]float64{0, 0, 0}, [3]float64{1, 1, 1}
	if img.Origin != "" {
		if err := parseFloats(strings.Fields(img.Origin), origin[:]); err != nil {
			return nil, err
		}
	}
	if img.Spacing != "" {
		if err := parseFloats(strings.Fields(img.Spacing), spacing[:]); err != nil {
			return nil, err
		}
	}
	if len(img.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrMalformed)
	}

	ds := NewDataset(dims, spacing, origin)
	if err := addPointData(ds, img.Pieces[0], dec); err != nil {
		return nil, err
	}
	return ds, nil
}

func readStructuredGridXML(sg *xmlStructuredGrid, dec *xmlDecoder) (*Dataset, error) {
	dims, err := extentDims(sg.WholeExtent)
	if err != nil {
		return nil, err
	}
	if len(sg.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrMalformed)
	}
	piece := sg.Pieces[0]
	if len(piece.Points.Arrays) == 0 {
		return nil, fmt.Errorf("%w: structured grid without Points", ErrMalformed)
	}

	pts, err := dec.decode(piece.Points.Arrays[0], 3*dims[0]*dims[1]*dims[2])
	if err != nil {
		return nil, err
	}
	origin, spacing, err := lattice(dims, pts)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(dims, spacing, origin)
	if err := addPointData(ds, piece, dec); err != nil {
		return nil, err
	}
	return ds, nil
}

func addPointData(ds *Dataset, piece xmlPiece, dec *xmlDecoder) error {
	for _, arr := range piece.PointData.Arrays {
		if arr.Components != "" && arr.Components != "1" {
			continue // only scalar arrays are exposed
		}
		vals, err := dec.decode(arr, ds.NumPoints())
		if err != nil {
			return fmt.Errorf("array %q: %w", arr.Name, err)
		}
		if err := ds.AddArray(arr.Name, vals); err != nil {
			return err
		}
	}
	if len(ds.names) == 0 {
		return ErrNoArrays
	}
	return nil
}

// extentDims converts "x0 x1 y0 y1 z0 z1" into point dimensions.
func extentDims(extent string) ([3]int, error) {
	var e [6]int
	if err := parseInts(strings.Fields(extent), e[:]); err != nil {
		return [3]int{}, fmt.Errorf("extent %q: %w", extent, err)
	}
	var dims [3]int
	for a := 0; a < 3; a++ {
		dims[a] = e[2*a+1] - e[2*a] + 1
		if dims[a] < 1 {
			return [3]int{}, fmt.Errorf("%w: extent %q", ErrMalformed, extent)
		}
	}
	return dims, nil
}

type xmlDecoder struct {
	littleEndian bool
	headerSize   int
}

func (d *xmlDecoder) decode(arr xmlDataArray, n int) ([]float64, error) {
	switch arr.Format {
	case "", "ascii":
		return decodeASCII(arr.Value, n)
	case "binary":
		return d.decodeBase64(arr, n)
	case "appended":
		return nil, fmt.Errorf("%w: appended data", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupported, arr.Format)
	}
}

func decodeASCII(text string, n int) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) < n {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrMalformed, n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q", ErrMalformed, fields[i])
		}
		out[i] = v
	}
	return out, nil
}

// decodeBase64 handles inline binary arrays: a UInt32/UInt64 byte
// count header followed by the raw values, base64-encoded together.
func (d *xmlDecoder) decodeBase64(arr xmlDataArray, n int) ([]float64, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(arr.Value))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}
	if len(raw) < d.headerSize {
		return nil, fmt.Errorf("%w: short binary block", ErrMalformed)
	}
	raw = raw[d.headerSize:]

	var order binary.ByteOrder = binary.LittleEndian
	if !d.littleEndian {
		order = binary.BigEndian
	}

	size, ok := xmlTypeSize(arr.Type)
	if !ok {
		return nil, fmt.Errorf("%w: type %q", ErrUnsupported, arr.Type)
	}
	if len(raw) < n*size {
		return nil, fmt.Errorf("%w: binary block holds %d values, need %d", ErrMalformed, len(raw)/size, n)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b := raw[i*size : (i+1)*size]
		switch arr.Type {
		case "Float32":
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		case "Float64":
			out[i] = math.Float64frombits(order.Uint64(b))
		case "Int32":
			out[i] = float64(int32(order.Uint32(b)))
		case "Int64":
			out[i] = float64(int64(order.Uint64(b)))
		case "UInt8":
			out[i] = float64(b[0])
		case "Int16":
			out[i] = float64(int16(order.Uint16(b)))
		}
	}
	return out, nil
}

func xmlTypeSize(typ string) (int, bool) {
	switch typ {
	case "Float32", "Int32":
		return 4, true
	case "Float64", "Int64":
		return 8, true
	case "Int16":
		return 2, true
	case "UInt8":
		return 1, true
	}
	return 0, false
}
