package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/pkg/math/vector"
)

type Type string

const (
	TypeDecisionTree Type = "decision_tree"
	TypeRandomForest Type = "random_forest"
	TypeAdaBoost     Type = "adaboost"
)

var ErrMalformed = errors.New("malformed model artifact")

// Artifact is the JSON export of a fitted scikit-learn tree model. Classes is
// empty for regressors.
type Artifact struct {
	Type             Type        `json:"type"`
	FeatureNames     []string    `json:"feature_names"`
	NFeatures        int         `json:"n_features"`
	Classes          []float64   `json:"classes"`
	Estimators       []Estimator `json:"estimators"`
	EstimatorWeights []float64   `json:"estimator_weights"`
}

var _ predictor.Model = (*Ensemble)(nil)

// Ensemble evaluates a decision tree, a random forest or an AdaBoost
// ensemble. It is immutable after Decode.
type Ensemble struct {
	kind       Type
	features   []string
	nFeatures  int
	classes    []float64
	estimators []Estimator
	weights    vector.V
}

// Decode reads and validates an artifact.
func Decode(r io.Reader) (*Ensemble, error) {
	var a Artifact
	d := json.NewDecoder(r)
	if err := d.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return New(a)
}

func New(a Artifact) (*Ensemble, error) {
	switch a.Type {
	case TypeDecisionTree:
		if len(a.Estimators) != 1 {
			return nil, fmt.Errorf("%w: decision tree has %d estimators", ErrMalformed, len(a.Estimators))
		}
	case TypeRandomForest:
	case TypeAdaBoost:
		if len(a.EstimatorWeights) != len(a.Estimators) {
			return nil, fmt.Errorf("%w: %d estimator weights for %d estimators", ErrMalformed, len(a.EstimatorWeights), len(a.Estimators))
		}
		var total float64
		for _, w := range a.EstimatorWeights {
			if w < 0 {
				return nil, fmt.Errorf("%w: negative estimator weight", ErrMalformed)
			}
			total += w
		}
		if total == 0 {
			return nil, fmt.Errorf("%w: estimator weights sum to zero", ErrMalformed)
		}
	default:
		return nil, fmt.Errorf("%w: unknown model type %q", ErrMalformed, a.Type)
	}
	if len(a.Estimators) == 0 {
		return nil, fmt.Errorf("%w: no estimators", ErrMalformed)
	}

	nFeatures := a.NFeatures
	if nFeatures == 0 {
		nFeatures = len(a.FeatureNames)
	}
	if nFeatures <= 0 {
		return nil, fmt.Errorf("%w: number of features is unknown", ErrMalformed)
	}
	if a.FeatureNames != nil && len(a.FeatureNames) != nFeatures {
		return nil, fmt.Errorf("%w: %d feature names for %d features", ErrMalformed, len(a.FeatureNames), nFeatures)
	}

	nOutputs := 1
	if len(a.Classes) > 0 {
		nOutputs = len(a.Classes)
	}
	for i := range a.Estimators {
		if err := a.Estimators[i].validate(nFeatures, nOutputs); err != nil {
			return nil, fmt.Errorf("%w: estimator %d: %v", ErrMalformed, i, err)
		}
	}

	return &Ensemble{
		kind:       a.Type,
		features:   a.FeatureNames,
		nFeatures:  nFeatures,
		classes:    a.Classes,
		estimators: a.Estimators,
		weights:    vector.New(a.EstimatorWeights),
	}, nil
}

func (e *Ensemble) Type() Type {
	return e.kind
}

func (e *Ensemble) Features() []string {
	if e.features == nil {
		return nil
	}
	return append([]string(nil), e.features...)
}

func (e *Ensemble) Dimensions() int {
	return e.nFeatures
}

func (e *Ensemble) classifier() bool {
	return len(e.classes) > 0
}

func (e *Ensemble) Predict(vec predictor.Features) (float64, error) {
	if err := predictor.CheckSchema(e, vec); err != nil {
		return 0, err
	}

	switch e.kind {
	case TypeDecisionTree:
		out := e.estimators[0].apply(vec)
		if e.classifier() {
			return e.classes[vector.New(out).ArgMax()], nil
		}
		return out[0], nil
	case TypeRandomForest:
		return e.predictForest(vec), nil
	case TypeAdaBoost:
		return e.predictBoosted(vec), nil
	default:
		return 0, fmt.Errorf("unknown model type %q", e.kind)
	}
}

// predictForest averages regressor outputs, or class probabilities for classifiers.
func (e *Ensemble) predictForest(vec predictor.Vector) float64 {
	if !e.classifier() {
		outputs := vector.Zeros(len(e.estimators))
		for i := range e.estimators {
			outputs[i] = e.estimators[i].apply(vec)[0]
		}
		return outputs.Mean()
	}

	proba := vector.Zeros(len(e.classes))
	for i := range e.estimators {
		p := vector.New(e.estimators[i].apply(vec)).Copy()
		p.Norm()
		proba.Add(p)
	}
	return e.classes[proba.ArgMax()]
}

// predictBoosted takes the weighted median of regressor outputs, or the
// weighted class vote (SAMME) for classifiers.
func (e *Ensemble) predictBoosted(vec predictor.Vector) float64 {
	if !e.classifier() {
		outputs := vector.Zeros(len(e.estimators))
		for i := range e.estimators {
			outputs[i] = e.estimators[i].apply(vec)[0]
		}
		return outputs.WeightedMedian(e.weights)
	}

	votes := vector.Zeros(len(e.classes))
	for i := range e.estimators {
		votes[vector.New(e.estimators[i].apply(vec)).ArgMax()] += e.weights[i]
	}
	return e.classes[votes.ArgMax()]
}
