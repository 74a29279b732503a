package encoder

import (
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/pkg/math/vector"
)

var _ predictor.Features = (*Vector)(nil)

// Vector is an encoded query: numeric features followed by the state and
// county indicator blocks. It shares its column names with the Encoder.
type Vector struct {
	names  []string
	values vector.V
}

func (v *Vector) Point(idx int) float64 {
	return v.values[idx]
}

func (v *Vector) Dimensions() int {
	return len(v.values)
}

func (v *Vector) Points() []float64 {
	return v.values.Copy()
}

func (v *Vector) Names() []string {
	return append([]string(nil), v.names...)
}

// Get returns the value of the named column.
func (v *Vector) Get(name string) (float64, bool) {
	for i, n := range v.names {
		if n == name {
			return v.values[i], true
		}
	}
	return 0, false
}

// Map returns the vector keyed by column name.
func (v *Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.names))
	for i, n := range v.names {
		m[n] = v.values[i]
	}
	return m
}

func (v *Vector) Equal(other *Vector) bool {
	if other == nil || len(v.names) != len(other.names) {
		return false
	}
	for i := range v.names {
		if v.names[i] != other.names[i] {
			return false
		}
	}
	return v.values.Equal(other.values)
}
