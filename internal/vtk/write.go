package vtk

import (
	"bufio"
	"fmt"
	"os"
)

// WriteVTI writes the dataset as an ascii XML ImageData file.
func WriteVTI(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, `<?xml version="1.0"?>`)
	fmt.Fprintln(w, `<VTKFile type="ImageData" version="0.1" byte_order="LittleEndian">`)
	extent := fmt.Sprintf("0 %d 0 %d 0 %d", ds.Dims[0]-1, ds.Dims[1]-1, ds.Dims[2]-1)
	fmt.Fprintf(w, "  <ImageData WholeExtent=\"%s\" Origin=\"%g %g %g\" Spacing=\"%g %g %g\">\n",
		extent, ds.Origin[0], ds.Origin[1], ds.Origin[2],
		ds.Spacing[0], ds.Spacing[1], ds.Spacing[2])
	fmt.Fprintf(w, "    <Piece Extent=\"%s\">\n", extent)

	defaultName := ""
	if len(ds.names) > 0 {
		defaultName = ds.names[0]
	}
	fmt.Fprintf(w, "      <PointData Scalars=\"%s\">\n", defaultName)
	for _, name := range ds.names {
		fmt.Fprintf(w, "        <DataArray type=\"Float64\" Name=\"%s\" format=\"ascii\">\n", name)
		data := ds.arrays[name]
		for i, v := range data {
			if i%6 == 0 {
				fmt.Fprint(w, "          ")
			}
			fmt.Fprintf(w, "%.17g", v)
			if i%6 == 5 || i == len(data)-1 {
				fmt.Fprintln(w)
			} else {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w, "        </DataArray>")
	}
	fmt.Fprintln(w, "      </PointData>")
	fmt.Fprintln(w, "    </Piece>")
	fmt.Fprintln(w, "  </ImageData>")
	fmt.Fprintln(w, "</VTKFile>")
	return w.Flush()
}

// WriteLegacyASCII writes the dataset as a legacy STRUCTURED_POINTS
// file, one SCALARS block per array.
func WriteLegacyASCII(path, title string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# vtk DataFile Version 3.0")
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "ASCII")
	fmt.Fprintln(w, "DATASET STRUCTURED_POINTS")
	fmt.Fprintf(w, "DIMENSIONS %d %d %d\n", ds.Dims[0], ds.Dims[1], ds.Dims[2])
	fmt.Fprintf(w, "SPACING %g %g %g\n", ds.Spacing[0], ds.Spacing[1], ds.Spacing[2])
	fmt.Fprintf(w, "ORIGIN %g %g %g\n", ds.Origin[0], ds.Origin[1], ds.Origin[2])
	fmt.Fprintf(w, "POINT_DATA %d\n", ds.NumPoints())
	for _, name := range ds.names {
		fmt.Fprintf(w, "SCALARS %s double 1\n", name)
		fmt.Fprintln(w, "LOOKUP_TABLE default")
		data := ds.arrays[name]
		for i, v := range data {
			fmt.Fprintf(w, "%.17g", v)
			if i%6 == 5 || i == len(data)-1 {
				fmt.Fprintln(w)
			} else {
				fmt.Fprint(w, " ")
			}
		}
	}
	return w.Flush()
}
