// Package service implements the submit operation: validate a query, encode it
// against the reference dataset and dispatch it to the chosen model.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/dispatcher"
	"github.com/go-aqi/aqi/internal/encoder"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/metric"
	"github.com/go-aqi/aqi/internal/predictor"
)

var ErrInvalidQuery = errors.New("invalid query")

// Request is one user submission.
type Request struct {
	State  string  `json:"state"`
	County string  `json:"county"`
	CO     float64 `json:"co"`
	NO2    float64 `json:"no2"`
	O3     float64 `json:"o3"`
	PM25   float64 `json:"pm25"`
	PM10   float64 `json:"pm10"`
	Model  string  `json:"model"`
}

// Validate checks the request before it reaches the encoder.
func (r Request) Validate() error {
	if strings.TrimSpace(r.State) == "" {
		return fmt.Errorf("%w: state is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(r.County) == "" {
		return fmt.Errorf("%w: county is required", ErrInvalidQuery)
	}
	for _, p := range []struct {
		name  dataset.Pollutant
		value float64
	}{
		{dataset.PollutantCO, r.CO},
		{dataset.PollutantNO2, r.NO2},
		{dataset.PollutantO3, r.O3},
		{dataset.PollutantPM25, r.PM25},
		{dataset.PollutantPM10, r.PM10},
	} {
		if math.IsNaN(p.value) || p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidQuery, p.name, p.value)
		}
	}
	return nil
}

func (r Request) query() encoder.Query {
	return encoder.Query{
		Location: dataset.Location{State: r.State, County: r.County},
		CO:       r.CO,
		NO2:      r.NO2,
		O3:       r.O3,
		PM25:     r.PM25,
		PM10:     r.PM10,
	}
}

// Service holds the shared read-only dataset, encoder and model registry.
type Service struct {
	ds         *dataset.Dataset
	encoder    *encoder.Encoder
	dispatcher dispatcher.Manager
}

func New(ds *dataset.Dataset, enc *encoder.Encoder, d dispatcher.Manager) *Service {
	return &Service{ds: ds, encoder: enc, dispatcher: d}
}

func (s *Service) States() []string {
	return s.ds.States()
}

func (s *Service) Counties(state string) ([]string, error) {
	return s.ds.Counties(state)
}

func (s *Service) Models() []predictor.ModelType {
	return s.dispatcher.Models()
}

// Encode validates req and returns its feature vector.
func (s *Service) Encode(req Request) (*encoder.Vector, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.encoder.Encode(req.query())
}

// Submit encodes req and returns the prediction of the chosen model.
func (s *Service) Submit(ctx context.Context, req Request) (*dispatcher.Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	vec, err := s.Encode(req)
	if err != nil {
		metric.RecordPrediction(ctx, req.Model, statusFor(err), time.Since(start), false)
		return nil, err
	}
	logger.Debugf("encoded %s/%s into %d columns", req.State, req.County, vec.Dimensions())

	result, err := s.dispatcher.Predict(ctx, vec, req.Model)
	if err != nil {
		metric.RecordPrediction(ctx, req.Model, statusFor(err), time.Since(start), false)
		return nil, err
	}
	metric.RecordPrediction(ctx, string(result.Model), metric.StatusOK, time.Since(start), result.Fallback)

	return result, nil
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, dispatcher.ErrUnknownModel):
		return metric.StatusInvalid
	case errors.Is(err, dataset.ErrNotFound):
		return metric.StatusNotFound
	default:
		return metric.StatusFailed
	}
}
