package reports

import "math"

// NormalizeVector scales an embedding to unit length so cosine comparisons
// reduce to dot products. Returns a new slice; a zero vector stays zero.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	result := make([]float32, len(v))
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return result
	}

	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}
