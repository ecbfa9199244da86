package vtk

import (
	"math"
	"math/rand"
)

// GenerateSample3D builds a synthetic 3D dataset for viewer testing:
// a "temperature" array mixing sinusoid products, a Gaussian bump and
// seeded noise, plus an "order_parameter" array with a diffuse
// spherical inclusion. The grid spans [0,10] x [0,8] x [0,6].
func GenerateSample3D(nx, ny, nz int, noise float64, seed int64) *Dataset {
	spacing := [3]float64{
		sampleSpacing(10.0, nx),
		sampleSpacing(8.0, ny),
		sampleSpacing(6.0, nz),
	}
	ds := NewDataset([3]int{nx, ny, nz}, spacing, [3]float64{0, 0, 0})
	rng := rand.New(rand.NewSource(seed))

	temp := make([]float64, ds.NumPoints())
	phi := make([]float64, ds.NumPoints())
	idx := 0
	for k := 0; k < nz; k++ {
		z := float64(k) * spacing[2]
		for j := 0; j < ny; j++ {
			y := float64(j) * spacing[1]
			for i := 0; i < nx; i++ {
				x := float64(i) * spacing[0]
				temp[idx] = math.Sin(x*0.5)*math.Cos(y*0.7)*math.Exp(-0.1*z) +
					0.3*math.Sin(2*x)*math.Sin(2*y) +
					0.2*math.Exp(-((x-5)*(x-5)+(y-4)*(y-4)+(z-3)*(z-3))/10)
				if noise > 0 {
					temp[idx] += noise * rng.NormFloat64()
				}
				r := math.Sqrt((x-5)*(x-5) + (y-4)*(y-4) + (z-3)*(z-3))
				phi[idx] = 0.5 * (1 - math.Tanh(2*(r-2)))
				idx++
			}
		}
	}
	ds.AddArray("temperature", temp)
	ds.AddArray("order_parameter", phi)
	return ds
}

// GenerateSample2D builds a single-layer dataset with wave patterns
// and a linear gradient, stored as a (nx, ny, 1) grid.
func GenerateSample2D(nx, ny int, noise float64, seed int64) *Dataset {
	spacing := [3]float64{sampleSpacing(10.0, nx), sampleSpacing(8.0, ny), 1.0}
	ds := NewDataset([3]int{nx, ny, 1}, spacing, [3]float64{0, 0, 0})
	rng := rand.New(rand.NewSource(seed))

	data := make([]float64, ds.NumPoints())
	idx := 0
	for j := 0; j < ny; j++ {
		y := float64(j) * spacing[1]
		for i := 0; i < nx; i++ {
			x := float64(i) * spacing[0]
			data[idx] = math.Sin(x*0.8)*math.Cos(y*0.6) +
				0.5*math.Sin(2*x+y) +
				0.3*math.Exp(-((x-5)*(x-5)+(y-4)*(y-4))/5) +
				0.2*x + 0.1*y
			if noise > 0 {
				data[idx] += noise * rng.NormFloat64()
			}
			idx++
		}
	}
	ds.AddArray("potential", data)
	return ds
}

func sampleSpacing(span float64, n int) float64 {
	if n > 1 {
		return span / float64(n-1)
	}
	return 1.0
}
