package config

import (
	"github.com/go-aqi/aqi/internal/database"
	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/dispatcher"
	"github.com/go-aqi/aqi/internal/predict"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/internal/setup"
)

var (
	_ setup.DatasetConfigProvider    = (*Config)(nil)
	_ setup.PredictorConfigProvider  = (*Config)(nil)
	_ setup.DispatcherConfigProvider = (*Config)(nil)
	_ setup.DatabaseConfigProvider   = (*Config)(nil)
	_ setup.ManifestConfigProvider   = (*Config)(nil)
)

type Config struct {
	SrvAddr        string `envconfig:"AQI_ADDR" default:":8787"`
	GRPCAddr       string `envconfig:"AQI_GRPC_ADDR" default:":8788"`
	MetricsEnabled bool   `envconfig:"AQI_METRICS_ENABLED" default:"true"`
	Manifest       string `envconfig:"AQI_MANIFEST"`
	Dataset        dataset.Config
	Predictor      predictor.Config
	Dispatcher     dispatcher.Config
	Predict        predict.Config
	Database       database.Config
}

func (c *Config) DatasetConfig() *dataset.Config {
	return &c.Dataset
}

func (c *Config) PredictorConfig() *predictor.Config {
	return &c.Predictor
}

func (c *Config) DispatcherConfig() *dispatcher.Config {
	return &c.Dispatcher
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) ManifestPath() string {
	return c.Manifest
}

// ToolConfig is the configuration of the one-shot CLI: no listeners.
type ToolConfig struct {
	Manifest   string `envconfig:"AQI_MANIFEST"`
	Dataset    dataset.Config
	Predictor  predictor.Config
	Dispatcher dispatcher.Config
	Database   database.Config
}

func (c *ToolConfig) DatasetConfig() *dataset.Config {
	return &c.Dataset
}

func (c *ToolConfig) PredictorConfig() *predictor.Config {
	return &c.Predictor
}

func (c *ToolConfig) DispatcherConfig() *dispatcher.Config {
	return &c.Dispatcher
}

func (c *ToolConfig) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *ToolConfig) ManifestPath() string {
	return c.Manifest
}
