package util

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func f(v float64) *float64 { return &v }

func TestNormalizeArray(t *testing.T) {
	inf := math.Inf(1)
	nan := math.NaN()

	cases := []struct {
		name     string
		in       []*float64
		min, max float64
		want     []float64
	}{
		{"unit range", []*float64{f(0), f(5), f(10)}, 0, 1, []float64{0, 0.5, 1}},
		{"shifted range", []*float64{f(2), f(4), f(6)}, 10, 20, []float64{10, 15, 20}},
		{"inverted range", []*float64{f(0), f(5), f(10)}, 200, 0, []float64{200, 100, 0}},
		{"unordered", []*float64{f(10), f(0), f(5)}, 0, 1, []float64{1, 0, 0.5}},
		// missing values are skipped by the minimum but count as zero afterwards
		{"missing value", []*float64{nil, f(5), f(10)}, 0, 1, []float64{-1, 0, 1}},
		{"missing with negatives", []*float64{f(-10), nil, f(10)}, 0, 1, []float64{0, 0.5, 1}},
		{"all equal", []*float64{f(5), f(5), f(5)}, 0, 1, []float64{nan, nan, nan}},
		{"all missing", []*float64{nil, nil}, 0, 1, []float64{nan, nan}},
		{"single value", []*float64{f(3)}, 0, 1, []float64{nan}},
		{"infinite input", []*float64{f(0), f(inf)}, 0, 1, []float64{0, nan}},
		{"nan input", []*float64{f(nan), f(1)}, 0, 1, []float64{nan, nan}},
		{"empty", []*float64{}, 0, 1, []float64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NormalizeArray(c.in, c.min, c.max)
			diff(t, c.want, got, cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-12))
		})
	}
}

func TestNormalizeFloats(t *testing.T) {
	diff(t, []float64{0, 0.25, 1}, NormalizeFloats([]float64{1, 2, 5}, 0, 1))
}

func ExampleNormalizeArray() {
	five, ten := 5.0, 10.0
	fmt.Println(NormalizeArray([]*float64{nil, &five, &ten}, 0, 1))
	fmt.Println(NormalizeFloats([]float64{0, 5, 10}, 0, 1))
	// Output:
	// [-1 0 1]
	// [0 0.5 1]
}
