package vector

import (
	"sort"
)

type V []float64

func New(vec []float64) V {
	return vec
}

// Zeros allocates a vector of n zero points.
func Zeros(n int) V {
	return make(V, n)
}

func (v V) Dimensions() int {
	return len(v)
}

// Norm scales v in place so that its points sum to 1. A zero-sum vector is left untouched.
func (v V) Norm() {
	s := v.Sum()
	if s == 0 {
		return
	}
	for i := range v {
		v[i] /= s
	}
}

func (v V) Point(idx int) float64 {
	return v[idx]
}

func (v V) Points() []float64 {
	return v
}

func (v V) Copy() V {
	var v1 = make(V, len(v))
	copy(v1, v)
	return v1
}

// Add accumulates vec into v point by point. Extra points of the longer vector are ignored.
func (v V) Add(vec V) {
	for i := 0; i < len(v) && i < len(vec); i++ {
		v[i] += vec[i]
	}
}

func (v V) Scale(value float64) {
	length := len(v)
	for i := 0; i < length; i++ {
		v[i] *= value
	}
}

func (v V) Sum() float64 {
	var s float64
	for i := range v {
		s += v[i]
	}
	return s
}

func (v V) SizeEqual(vec V) bool {
	return len(v) == len(vec)
}

func (v V) Equal(vec V) bool {
	if len(v) != len(vec) {
		return false
	}
	for i, value := range v {
		if vec[i] != value {
			return false
		}
	}
	return true
}

// ArgMax returns the index of the first maximal point, -1 for an empty vector.
func (v V) ArgMax() int {
	idx := -1
	for i := range v {
		if idx == -1 || v[i] > v[idx] {
			idx = i
		}
	}
	return idx
}

func (v V) Mean() float64 {
	return v.Sum() / float64(len(v))
}

// WeightedMedian returns the lowest point whose cumulative weight reaches half
// of the total weight. Weights must be aligned with v.
func (v V) WeightedMedian(weights V) float64 {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return v[idx[i]] < v[idx[j]]
	})

	half := 0.5 * weights.Sum()
	var cdf float64
	for _, i := range idx {
		cdf += weights[i]
		if cdf >= half {
			return v[i]
		}
	}
	return v[idx[len(idx)-1]]
}
