package vector

import (
	"testing"
)

func TestV_Norm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		v        V
		expected V
	}{
		{name: "positive", v: V{1, 1, 2}, expected: V{0.25, 0.25, 0.5}},
		{name: "zero_sum", v: V{0, 0}, expected: V{0, 0}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			test.v.Norm()
			if !test.v.Equal(test.expected) {
				t.Errorf("normalization got: %v, expected: %v", test.v, test.expected)
			}
		})
	}
}

func TestV_ArgMax(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		v        V
		expected int
	}{
		{name: "empty", v: V{}, expected: -1},
		{name: "single", v: V{3}, expected: 0},
		{name: "first_of_ties", v: V{1, 5, 5, 2}, expected: 1},
		{name: "negative", v: V{-3, -1, -2}, expected: 1},
	}
	for _, test := range tests {
		if got := test.v.ArgMax(); got != test.expected {
			t.Errorf("%s: argmax got: %d, expected: %d", test.name, got, test.expected)
		}
	}
}

func TestV_WeightedMedian(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		v        V
		weights  V
		expected float64
	}{
		{name: "uniform_odd", v: V{30, 10, 20}, weights: V{1, 1, 1}, expected: 20},
		{name: "uniform_even", v: V{40, 10, 30, 20}, weights: V{1, 1, 1, 1}, expected: 20},
		{name: "heavy_tail", v: V{10, 20, 30}, weights: V{0.1, 0.1, 5}, expected: 30},
		{name: "single", v: V{42}, weights: V{0.7}, expected: 42},
	}
	for _, test := range tests {
		if got := test.v.WeightedMedian(test.weights); got != test.expected {
			t.Errorf("%s: weighted median got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestV_Copy(t *testing.T) {
	t.Parallel()
	v := V{1, 2, 3}
	c := v.Copy()
	c[0] = 10
	if v[0] != 1 {
		t.Errorf("copy shares storage with the source vector")
	}
	if !v.SizeEqual(c) {
		t.Errorf("copy size got: %d, expected: %d", c.Dimensions(), v.Dimensions())
	}
}

func TestV_AddMean(t *testing.T) {
	t.Parallel()
	v := Zeros(2)
	v.Add(V{1, 3})
	v.Add(V{3, 5, 100})
	v.Scale(0.5)
	if !v.Equal(V{2, 4}) {
		t.Errorf("add/scale got: %v, expected: %v", v, V{2, 4})
	}
	if v.Mean() != 3 {
		t.Errorf("mean got: %v, expected: %v", v.Mean(), 3)
	}
}
