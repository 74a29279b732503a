package tree

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/go-aqi/aqi/internal/artifact"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type features struct {
	names  []string
	points []float64
}

func (f features) Point(idx int) float64 { return f.points[idx] }
func (f features) Dimensions() int       { return len(f.points) }
func (f features) Points() []float64     { return f.points }
func (f features) Names() []string       { return f.names }

var names = []string{"CO_perc", "NO2_perc"}

// stump splits on feature at threshold and returns left or right. The
// threshold is stored at float32 precision as fitted trees hold it.
func stump(feature int, threshold float64, left, right []float64) Estimator {
	return Estimator{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{feature, -2, -2},
		Threshold:     []float64{float64(float32(threshold)), -2, -2},
		Value:         [][]float64{{0}, left, right},
	}
}

func mustNew(t *testing.T, a Artifact) *Ensemble {
	t.Helper()
	e, err := New(a)
	require.NoError(t, err)
	return e
}

func TestEnsemble_DecisionTree(t *testing.T) {
	t.Parallel()
	e := mustNew(t, Artifact{
		Type:         TypeDecisionTree,
		FeatureNames: names,
		Estimators:   []Estimator{stump(0, 0.3, []float64{40}, []float64{80})},
	})
	tests := []struct {
		name     string
		vec      features
		expected float64
	}{
		{name: "left", vec: features{names, []float64{0.2, 0}}, expected: 40},
		{name: "threshold_goes_left", vec: features{names, []float64{0.3, 0}}, expected: 40},
		{name: "right", vec: features{names, []float64{0.5, 0}}, expected: 80},
	}
	for _, test := range tests {
		got, err := e.Predict(test.vec)
		if err != nil {
			t.Fatalf("%s: predict error: %v", test.name, err)
		}
		if got != test.expected {
			t.Errorf("%s: prediction got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestEnsemble_Float32Split(t *testing.T) {
	t.Parallel()
	threshold := float64(float32(0.3))
	e := mustNew(t, Artifact{
		Type:         TypeDecisionTree,
		FeatureNames: names,
		Estimators:   []Estimator{stump(0, threshold, []float64{40}, []float64{80})},
	})
	tests := []struct {
		name     string
		point    float64
		expected float64
	}{
		{name: "rounds_onto_threshold", point: threshold + 1e-12, expected: 40},
		{name: "float64_literal", point: 0.3, expected: 40},
		{name: "next_float32", point: float64(float32(0.3000001)), expected: 80},
	}
	for _, test := range tests {
		got, err := e.Predict(features{names, []float64{test.point, 0}})
		if err != nil {
			t.Fatalf("%s: predict error: %v", test.name, err)
		}
		if got != test.expected {
			t.Errorf("%s: prediction got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestEnsemble_RandomForest(t *testing.T) {
	t.Parallel()
	reg := mustNew(t, Artifact{
		Type:      TypeRandomForest,
		NFeatures: 2,
		Estimators: []Estimator{
			stump(0, 0.3, []float64{40}, []float64{80}),
			stump(1, 0.5, []float64{20}, []float64{60}),
		},
	})
	got, err := reg.Predict(features{nil, []float64{0.5, 0.1}})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	clf := mustNew(t, Artifact{
		Type:      TypeRandomForest,
		NFeatures: 2,
		Classes:   []float64{1, 2},
		Estimators: []Estimator{
			stump(0, 0.3, []float64{10, 0}, []float64{3, 1}),
			stump(1, 0.5, []float64{1, 3}, []float64{0, 2}),
		},
	})
	// normalised [0.75 0.25] + [0.25 0.75] is a tie, the first class wins
	got, err = clf.Predict(features{nil, []float64{0.5, 0.1}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = clf.Predict(features{nil, []float64{0.5, 0.9}})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestEnsemble_AdaBoost(t *testing.T) {
	t.Parallel()
	reg := mustNew(t, Artifact{
		Type:      TypeAdaBoost,
		NFeatures: 2,
		Estimators: []Estimator{
			stump(0, 0.3, []float64{10}, []float64{30}),
			stump(0, 0.3, []float64{20}, []float64{10}),
			stump(0, 0.3, []float64{30}, []float64{20}),
		},
		EstimatorWeights: []float64{1, 1, 3},
	})
	got, err := reg.Predict(features{nil, []float64{0.1, 0}})
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)

	clf := mustNew(t, Artifact{
		Type:      TypeAdaBoost,
		NFeatures: 2,
		Classes:   []float64{0, 1},
		Estimators: []Estimator{
			stump(0, 0.3, []float64{1, 0}, []float64{0, 1}),
			stump(1, 0.3, []float64{0, 1}, []float64{1, 0}),
		},
		EstimatorWeights: []float64{0.4, 0.9},
	})
	got, err = clf.Predict(features{nil, []float64{0.1, 0.1}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestEnsemble_SchemaMismatch(t *testing.T) {
	t.Parallel()
	e := mustNew(t, Artifact{
		Type:         TypeDecisionTree,
		FeatureNames: names,
		Estimators:   []Estimator{stump(0, 0.3, []float64{40}, []float64{80})},
	})
	tests := []struct {
		name string
		vec  features
	}{
		{name: "narrow", vec: features{names[:1], []float64{0.2}}},
		{name: "wide", vec: features{append(names, "O3_perc"), []float64{0.2, 0, 0}}},
		{name: "renamed", vec: features{[]string{"NO2_perc", "CO_perc"}, []float64{0.2, 0}}},
	}
	for _, test := range tests {
		if _, err := e.Predict(test.vec); !errors.Is(err, predictor.ErrSchemaMismatch) {
			t.Errorf("%s: predict got: %v, expected: %v", test.name, err, predictor.ErrSchemaMismatch)
		}
	}
}

func TestNew_Malformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a    Artifact
	}{
		{name: "unknown_type", a: Artifact{Type: "svm", NFeatures: 2, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "no_estimators", a: Artifact{Type: TypeRandomForest, NFeatures: 2}},
		{name: "tree_with_two_estimators", a: Artifact{Type: TypeDecisionTree, NFeatures: 2, Estimators: []Estimator{
			stump(0, 0, []float64{1}, []float64{2}), stump(0, 0, []float64{1}, []float64{2}),
		}}},
		{name: "unknown_width", a: Artifact{Type: TypeDecisionTree, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "names_width_differ", a: Artifact{Type: TypeDecisionTree, NFeatures: 3, FeatureNames: names, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "feature_out_of_range", a: Artifact{Type: TypeDecisionTree, NFeatures: 2, Estimators: []Estimator{stump(2, 0, []float64{1}, []float64{2})}}},
		{name: "missing_weights", a: Artifact{Type: TypeAdaBoost, NFeatures: 2, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "zero_weights", a: Artifact{Type: TypeAdaBoost, NFeatures: 2, EstimatorWeights: []float64{0}, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "class_outputs", a: Artifact{Type: TypeDecisionTree, NFeatures: 2, Classes: []float64{0, 1, 2}, Estimators: []Estimator{stump(0, 0, []float64{1}, []float64{2})}}},
		{name: "cycle", a: Artifact{Type: TypeDecisionTree, NFeatures: 2, Estimators: []Estimator{{
			ChildrenLeft:  []int{0, -1},
			ChildrenRight: []int{1, -1},
			Feature:       []int{0, -2},
			Threshold:     []float64{0, -2},
			Value:         [][]float64{{0}, {1}},
		}}}},
		{name: "ragged", a: Artifact{Type: TypeDecisionTree, NFeatures: 2, Estimators: []Estimator{{
			ChildrenLeft:  []int{-1},
			ChildrenRight: []int{-1, -1},
			Feature:       []int{-2},
			Threshold:     []float64{-2},
			Value:         [][]float64{{1}},
		}}}},
	}
	for _, test := range tests {
		if _, err := New(test.a); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: new got: %v, expected: %v", test.name, err, ErrMalformed)
		}
	}
}

const dtJSON = `{
  "type": "decision_tree",
  "feature_names": ["CO_perc", "NO2_perc"],
  "estimators": [{
    "children_left": [1, -1, -1],
    "children_right": [2, -1, -1],
    "feature": [0, -2, -2],
    "threshold": [0.3, -2, -2],
    "value": [[60], [40], [80]]
  }]
}`

type memSource map[string]string

func (m memSource) Open(name string) (io.ReadCloser, error) {
	s, ok := m[name]
	if !ok {
		return nil, artifact.ErrNotExist
	}
	return ioutil.NopCloser(strings.NewReader(s)), nil
}

func TestLoad(t *testing.T) {
	t.Parallel()
	src := memSource{"dt_aqi.json": dtJSON, "broken.json": `{"type":`}
	ctx := context.Background()

	e, err := Load(ctx, src, "dt_aqi.json", TypeDecisionTree)
	require.NoError(t, err)
	assert.Equal(t, names, e.Features())
	assert.Equal(t, 2, e.Dimensions())

	_, err = Load(ctx, src, "dt_aqi.json", TypeRandomForest)
	assert.True(t, errors.Is(err, ErrMalformed), "type mismatch got: %v", err)

	_, err = Load(ctx, src, "broken.json", TypeDecisionTree)
	assert.True(t, errors.Is(err, ErrMalformed), "broken json got: %v", err)

	_, err = Load(ctx, src, "rf_aqi.json", TypeRandomForest)
	assert.True(t, errors.Is(err, artifact.ErrNotExist), "missing artifact got: %v", err)
}
