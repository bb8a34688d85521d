package util

import "math"

// NormalizeArray linearly rescales values so the smallest maps to minValue and
// the largest to maxValue.
//
// Missing values (nil) are skipped when searching for the minimum but count
// as 0 in the arithmetic that follows, so [nil, 5, 10] into [0, 1] gives
// [-1, 0, 1].
//
// Nothing is guarded: equal values divide zero by zero and give NaN, and a
// slice with no present values gives NaN for every entry.
func NormalizeArray(values []*float64, minValue, maxValue float64) []float64 {
	minOfArray := math.Inf(1)
	for _, v := range values {
		if v == nil {
			continue
		}
		minOfArray = math.Min(minOfArray, *v)
	}

	shifted := make([]float64, len(values))
	maxOfShifted := math.Inf(-1)
	for i, v := range values {
		shifted[i] = valueOrZero(v) - minOfArray
		maxOfShifted = math.Max(maxOfShifted, shifted[i])
	}

	valueRange := maxValue - minValue
	normalized := make([]float64, len(values))
	for i, s := range shifted {
		normalized[i] = s/maxOfShifted*valueRange + minValue
	}
	return normalized
}

// NormalizeFloats is NormalizeArray for slices without missing values
func NormalizeFloats(values []float64, minValue, maxValue float64) []float64 {
	return NormalizeArray(Ptrs(values), minValue, maxValue)
}

// Ptrs returns a pointer to every element of values
func Ptrs(values []float64) []*float64 {
	ret := make([]*float64, len(values))
	for i := range values {
		ret[i] = &values[i]
	}
	return ret
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
