package dispatcher

import (
	"errors"
	"fmt"

	"github.com/go-aqi/aqi/internal/predictor"
)

var (
	ErrPredictionFailed = errors.New("prediction failed")
	ErrUnknownModel     = errors.New("unknown model choice")
)

// PredictionError reports a model that rejected the encoded vector.
type PredictionError struct {
	Model predictor.ModelType
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s: model %q: %v", ErrPredictionFailed, e.Model, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

func (e *PredictionError) Is(target error) bool {
	return target == ErrPredictionFailed
}
