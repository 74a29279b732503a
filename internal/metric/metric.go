// Package metric defines the opencensus measures recorded for predictions.
package metric

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const namespace = "aqi"

// Outcome labels.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusNotFound = "not_found"
	StatusFailed   = "failed"
)

var (
	Predictions = stats.Int64(
		"aqi/predictions",
		"Number of submitted predictions",
		stats.UnitDimensionless,
	)
	PredictionLatencyMs = stats.Float64(
		"aqi/prediction_latency",
		"Time spent encoding and predicting one query",
		stats.UnitMilliseconds,
	)
	Fallbacks = stats.Int64(
		"aqi/model_choice_fallbacks",
		"Number of unrecognised model choices served by the random forest",
		stats.UnitDimensionless,
	)

	KeyModel  = mustKey("model")
	KeyStatus = mustKey("status")
)

func mustKey(name string) tag.Key {
	k, err := tag.NewKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

var Views = []*view.View{
	{
		Name:        "aqi/predictions_total",
		Measure:     Predictions,
		Description: "Number of submitted predictions by model and status",
		TagKeys:     []tag.Key{KeyModel, KeyStatus},
		Aggregation: view.Count(),
	},
	{
		Name:        "aqi/prediction_latency_ms",
		Measure:     PredictionLatencyMs,
		Description: "Prediction latency distribution",
		TagKeys:     []tag.Key{KeyModel},
		Aggregation: view.Distribution(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100),
	},
	{
		Name:        "aqi/model_choice_fallbacks_total",
		Measure:     Fallbacks,
		Description: "Number of unrecognised model choices",
		Aggregation: view.Count(),
	},
}

// Register registers the views and returns the Prometheus scrape handler.
func Register() (http.Handler, error) {
	if err := view.Register(Views...); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return exporter, nil
}

// RecordPrediction records the outcome and latency of one submitted query.
func RecordPrediction(ctx context.Context, model, status string, elapsed time.Duration, fallback bool) {
	ctx, err := tag.New(ctx, tag.Upsert(KeyModel, model), tag.Upsert(KeyStatus, status))
	if err != nil {
		return
	}
	ms := []stats.Measurement{Predictions.M(1)}
	if status == StatusOK {
		ms = append(ms, PredictionLatencyMs.M(float64(elapsed)/float64(time.Millisecond)))
	}
	if fallback {
		ms = append(ms, Fallbacks.M(1))
	}
	stats.Record(ctx, ms...)
}
