package dispatcher

import (
	"context"
	"fmt"

	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/google/uuid"
)

// Contract for returning the Manager instance
type ProvideFn func(models map[predictor.ModelType]Entry) (Manager, error)

// Manager routes encoded vectors to the fitted models.
type Manager interface {
	// Resolve maps a caller-supplied model choice to a model type. The second
	// result is false when the choice was not recognised and routed to the
	// random forest.
	Resolve(choice string) (predictor.ModelType, bool, error)
	// Predict runs the model selected by choice on vec
	Predict(ctx context.Context, vec predictor.Features, choice string) (*Result, error)
	// Models returns the registered model types
	Models() []predictor.ModelType
}

// Entry is a registered model with the id of its feature-importance artifact.
type Entry struct {
	Model      predictor.Model
	Importance string
}

// Result is the outcome of one prediction.
type Result struct {
	ID         uuid.UUID           `json:"id"`
	Prediction float64             `json:"prediction"`
	Model      predictor.ModelType `json:"model"`
	Importance string              `json:"importance"`
	Choice     string              `json:"choice"`
	Fallback   bool                `json:"fallback"`
}

type Options struct {
	strictModelChoice bool
}

type Option func(*manager)

func WithStrictModelChoice(t bool) Option {
	return func(m *manager) {
		m.opts.strictModelChoice = t
	}
}

// New returns a manager over a registry holding every model type.
func New(models map[predictor.ModelType]Entry, opts ...Option) (*manager, error) {
	registry := make(map[predictor.ModelType]Entry, len(predictor.ModelTypes))
	for _, t := range predictor.ModelTypes {
		entry, ok := models[t]
		if !ok || entry.Model == nil {
			return nil, fmt.Errorf("model %q is not registered", t)
		}
		registry[t] = entry
	}

	m := &manager{models: registry}
	for _, f := range opts {
		f(m)
	}

	return m, nil
}

// The registry is filled once in New and only read afterwards, so
// concurrent predictions need no locking.
type manager struct {
	opts   Options
	models map[predictor.ModelType]Entry
}

func (m *manager) Models() []predictor.ModelType {
	return append([]predictor.ModelType(nil), predictor.ModelTypes...)
}

func (m *manager) Resolve(choice string) (predictor.ModelType, bool, error) {
	switch predictor.ModelType(choice) {
	case predictor.ModelDecisionTree:
		return predictor.ModelDecisionTree, true, nil
	case predictor.ModelAdaBoost:
		return predictor.ModelAdaBoost, true, nil
	case predictor.ModelRandomForest:
		return predictor.ModelRandomForest, true, nil
	default:
		if m.opts.strictModelChoice {
			return "", false, fmt.Errorf("%w: %q", ErrUnknownModel, choice)
		}
		// any other choice is served by the random forest
		return predictor.ModelRandomForest, false, nil
	}
}

func (m *manager) Predict(ctx context.Context, vec predictor.Features, choice string) (*Result, error) {
	logger := logging.FromContext(ctx)

	modelType, exact, err := m.Resolve(choice)
	if err != nil {
		return nil, err
	}
	if !exact {
		logger.Warnf("model choice %q is not recognised, using %s", choice, modelType)
	}

	entry := m.models[modelType]
	value, err := entry.Model.Predict(vec)
	if err != nil {
		return nil, &PredictionError{Model: modelType, Err: err}
	}
	logger.Debugf("model %s predicted %v", modelType, value)

	return &Result{
		ID:         uuid.New(),
		Prediction: value,
		Model:      modelType,
		Importance: entry.Importance,
		Choice:     choice,
		Fallback:   !exact,
	}, nil
}
