package tree

import (
	"errors"
	"fmt"

	"github.com/go-aqi/aqi/internal/predictor"
)

const leaf = -1

var errMalformedTree = errors.New("malformed tree")

// Estimator is a fitted binary tree in the flat array layout scikit-learn
// keeps in tree_: node i splits on Feature[i] at Threshold[i], samples with
// a value <= Threshold go to ChildrenLeft[i].
type Estimator struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (e *Estimator) validate(nFeatures, nOutputs int) error {
	n := len(e.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("%w: no nodes", errMalformedTree)
	}
	if len(e.ChildrenRight) != n || len(e.Feature) != n || len(e.Threshold) != n || len(e.Value) != n {
		return fmt.Errorf("%w: node arrays differ in length", errMalformedTree)
	}
	for i := 0; i < n; i++ {
		l, r := e.ChildrenLeft[i], e.ChildrenRight[i]
		if l == leaf || r == leaf {
			if l != r {
				return fmt.Errorf("%w: node %d has a single child", errMalformedTree, i)
			}
			if len(e.Value[i]) != nOutputs {
				return fmt.Errorf("%w: leaf %d has %d outputs, expected %d", errMalformedTree, i, len(e.Value[i]), nOutputs)
			}
			continue
		}
		// children are stored after their parent, which also rules out cycles
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("%w: node %d has children out of range", errMalformedTree, i)
		}
		if f := e.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", errMalformedTree, i, f, nFeatures)
		}
	}
	return nil
}

// apply returns the leaf values reached by vec. Features are compared in
// float32, the precision the trees were fit with.
func (e *Estimator) apply(vec predictor.Vector) []float64 {
	node := 0
	for e.ChildrenLeft[node] != leaf {
		if float64(float32(vec.Point(e.Feature[node]))) <= e.Threshold[node] {
			node = e.ChildrenLeft[node]
		} else {
			node = e.ChildrenRight[node]
		}
	}
	return e.Value[node]
}
