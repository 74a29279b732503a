package predictor

import (
	"errors"
	"fmt"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

type ProvideFn func() (Model, error)

type Vector interface {
	Point(idx int) float64
	Dimensions() int
	Points() []float64
}

// Features is a Vector whose points are labelled by column name.
type Features interface {
	Vector
	Names() []string
}

// Model is a fitted, read-only predictor. Implementations must be safe for
// concurrent use.
type Model interface {
	// Features returns the column names the model was fit on, nil when unknown.
	Features() []string
	Dimensions() int
	Predict(vec Features) (float64, error)
}

// CheckSchema verifies that vec has the width and, when the model knows them,
// the column names the model was fit on.
func CheckSchema(m Model, vec Features) error {
	if vec.Dimensions() != m.Dimensions() {
		return fmt.Errorf("%w: vector has %d columns, model expects %d", ErrSchemaMismatch, vec.Dimensions(), m.Dimensions())
	}
	fitted := m.Features()
	if fitted == nil {
		return nil
	}
	names := vec.Names()
	if len(names) != len(fitted) {
		return fmt.Errorf("%w: vector has %d column names, model expects %d", ErrSchemaMismatch, len(names), len(fitted))
	}
	for i := range fitted {
		if names[i] != fitted[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", ErrSchemaMismatch, i, names[i], fitted[i])
		}
	}
	return nil
}

// CheckNames compares a model's fitted schema against the encoder's column names.
func CheckNames(m Model, names []string) error {
	return CheckSchema(m, namesOnly(names))
}

type namesOnly []string

func (n namesOnly) Point(int) float64 { return 0 }
func (n namesOnly) Dimensions() int   { return len(n) }
func (n namesOnly) Points() []float64 { return nil }
func (n namesOnly) Names() []string   { return n }
