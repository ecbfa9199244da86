package field

import "math"

// Stats summarises a scalar array, ignoring NaN cells.
type Stats struct {
	Min, Max  float64
	Mean, Std float64
	Count     int // valid (non-NaN) cells
}

func ComputeStats(data []float64) Stats {
	st := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		st.Count++
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	if st.Count == 0 {
		return Stats{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), Std: math.NaN()}
	}
	st.Mean = sum / float64(st.Count)

	ss := 0.0
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		d := v - st.Mean
		ss += d * d
	}
	st.Std = math.Sqrt(ss / float64(st.Count))
	return st
}

// Histogram bins the valid values into n equal-width bins over
// [min, max] and returns the counts plus the bin edges (n+1 values).
// Values exactly at max land in the last bin.
func Histogram(data []float64, n int, min, max float64) (counts []float64, edges []float64) {
	if n < 1 {
		n = 1
	}
	counts = make([]float64, n)
	edges = make([]float64, n+1)
	width := (max - min) / float64(n)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	if width <= 0 {
		return counts, edges
	}
	for _, v := range data {
		if math.IsNaN(v) || v < min || v > max {
			continue
		}
		b := int((v - min) / width)
		if b >= n {
			b = n - 1
		}
		counts[b]++
	}
	return counts, edges
}
