package tree

import (
	"context"
	"fmt"

	"github.com/go-aqi/aqi/internal/artifact"
	"github.com/go-aqi/aqi/internal/logging"
)

// Load opens the artifact name from src and checks that it holds a model of the expected type.
func Load(ctx context.Context, src artifact.Source, name string, expected Type) (*Ensemble, error) {
	logger := logging.FromContext(ctx)

	rc, err := src.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer rc.Close()

	e, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", name, err)
	}
	if e.Type() != expected {
		return nil, fmt.Errorf("%w: %s holds a %s model, expected %s", ErrMalformed, name, e.Type(), expected)
	}
	logger.Infof("model %s loaded from %s, estimators: %d, features: %d", e.Type(), name, len(e.estimators), e.Dimensions())

	return e, nil
}
