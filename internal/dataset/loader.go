package dataset

import (
	"context"
	"fmt"

	"github.com/go-aqi/aqi/internal/artifact"
	"github.com/go-aqi/aqi/internal/logging"
)

// Load reads the reference table named by cfg from src. It is called once at
// process start; any error is fatal for the caller.
func Load(ctx context.Context, src artifact.Source, cfg *Config) (*Dataset, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("loading reference dataset %s", cfg.Path)

	rc, err := src.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open reference dataset: %w", err)
	}
	defer rc.Close()

	ds, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse reference dataset %s: %w", cfg.Path, err)
	}
	logger.Infof(
		"reference dataset loaded, rows: %d, features: %d, states: %d, locations: %d",
		ds.Len(), len(ds.featureNames), len(ds.domain.states), ds.domain.Len(),
	)

	return ds, nil
}
