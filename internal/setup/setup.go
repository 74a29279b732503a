package setup

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-aqi/aqi/internal/artifact"
	artifactDb "github.com/go-aqi/aqi/internal/artifact/database"
	"github.com/go-aqi/aqi/internal/database"
	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/dispatcher"
	"github.com/go-aqi/aqi/internal/encoder"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/manifest"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/internal/predictor/tree"
	"github.com/go-aqi/aqi/internal/service"
	"github.com/go-aqi/aqi/internal/srvenv"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

type DatasetConfigProvider interface {
	DatasetConfig() *dataset.Config
}

type PredictorConfigProvider interface {
	PredictorConfig() *predictor.Config
}

type DispatcherConfigProvider interface {
	DispatcherConfig() *dispatcher.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type ManifestConfigProvider interface {
	ManifestPath() string
}

// artifact type expected behind every model choice
var treeTypes = map[predictor.ModelType]tree.Type{
	predictor.ModelDecisionTree: tree.TypeDecisionTree,
	predictor.ModelRandomForest: tree.TypeRandomForest,
	predictor.ModelAdaBoost:     tree.TypeAdaBoost,
}

// LoadEnv loads the .env files (".env" when none are named) into the process
// environment and returns ctx carrying a logger configured from it. Mains call
// it before anything logs. A missing file is not an error.
func LoadEnv(ctx context.Context, filenames ...string) context.Context {
	err := godotenv.Load(filenames...)
	logger := logging.NewFromEnv()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("unable to load .env file: %v", err)
	}
	return logging.WithLogger(ctx, logger)
}

// Setup processes the environment into config and loads the reference
// dataset and the models. Every failure here is fatal for the process.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	return SetupWith(ctx, config)
}

// SetupWith builds the environment from an already populated config.
func SetupWith(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option

	datasetConfigProvider, ok := config.(DatasetConfigProvider)
	if !ok {
		return nil, fmt.Errorf("unable read dataset config")
	}
	predictorConfigProvider, ok := config.(PredictorConfigProvider)
	if !ok {
		return nil, fmt.Errorf("unable read predictor config")
	}
	datasetCfg := datasetConfigProvider.DatasetConfig()
	predictorCfg := predictorConfigProvider.PredictorConfig()

	if manifestConfigProvider, ok := config.(ManifestConfigProvider); ok && manifestConfigProvider.ManifestPath() != "" {
		logger.Infof("Configuring artifacts from manifest %s", manifestConfigProvider.ManifestPath())
		m, err := manifest.Load(manifestConfigProvider.ManifestPath())
		if err != nil {
			return nil, err
		}
		if err := m.Apply(datasetCfg, predictorCfg); err != nil {
			return nil, err
		}
	}

	var src artifact.Source = artifact.NewDir("")
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled() {
		logger.Info("Configuring artifact db")
		db, err := database.NewReadOnly(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		src = artifactDb.New(db)
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}
	serverEnvOpts = append(serverEnvOpts, srvenv.WithSource(src))

	env, err := build(ctx, src, datasetCfg, predictorCfg, config, serverEnvOpts)
	if err != nil {
		// release the bolt file lock taken above
		_ = srvenv.New(serverEnvOpts...).Close(ctx)
		return nil, err
	}
	return env, nil
}

func build(
	ctx context.Context,
	src artifact.Source,
	datasetCfg *dataset.Config,
	predictorCfg *predictor.Config,
	config interface{},
	serverEnvOpts []srvenv.Option,
) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)

	logger.Info("Configuring reference dataset")
	ds, err := dataset.Load(ctx, src, datasetCfg)
	if err != nil {
		return nil, err
	}
	enc := encoder.New(ds)
	logger.Infof("feature schema has %d columns", enc.Dimensions())

	logger.Info("Configuring models")
	models, err := LoadModels(ctx, src, predictorCfg)
	if err != nil {
		return nil, err
	}
	if err := CheckSchemas(ctx, models, enc.Schema(), predictorCfg.StrictSchema); err != nil {
		return nil, err
	}

	var dispatcherCfg dispatcher.Config
	if dispatcherConfigProvider, ok := config.(DispatcherConfigProvider); ok {
		dispatcherCfg = *dispatcherConfigProvider.DispatcherConfig()
	}
	d, err := ProvideDispatcherFor(&dispatcherCfg)(models)
	if err != nil {
		return nil, fmt.Errorf("unable create dispatcher: %w", err)
	}

	serverEnvOpts = append(serverEnvOpts,
		srvenv.WithDataset(ds),
		srvenv.WithEncoder(enc),
		srvenv.WithDispatcher(d),
		srvenv.WithService(service.New(ds, enc, d)),
	)
	return srvenv.New(serverEnvOpts...), nil
}

// LoadModels loads the three model artifacts concurrently.
func LoadModels(ctx context.Context, src artifact.Source, cfg *predictor.Config) (map[predictor.ModelType]dispatcher.Entry, error) {
	var (
		mtx    sync.Mutex
		models = make(map[predictor.ModelType]dispatcher.Entry, len(predictor.ModelTypes))
	)
	errGrp, ctx := errgroup.WithContext(ctx)
	for _, mt := range predictor.ModelTypes {
		mt := mt
		path, err := cfg.ArtifactFor(mt)
		if err != nil {
			return nil, err
		}
		importance, err := cfg.ImportanceFor(mt)
		if err != nil {
			return nil, err
		}
		provideFn := ProvidePredictorFor(ctx, src, path, treeTypes[mt])
		errGrp.Go(func() error {
			m, err := provideFn()
			if err != nil {
				return fmt.Errorf("unable load %s model: %w", mt, err)
			}
			mtx.Lock()
			models[mt] = dispatcher.Entry{Model: m, Importance: importance}
			mtx.Unlock()
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

// CheckSchemas compares every model's fitted columns with the encoder schema.
func CheckSchemas(ctx context.Context, models map[predictor.ModelType]dispatcher.Entry, schema []string, strict bool) error {
	logger := logging.FromContext(ctx)
	for _, mt := range predictor.ModelTypes {
		entry, ok := models[mt]
		if !ok {
			continue
		}
		if err := predictor.CheckNames(entry.Model, schema); err != nil {
			if strict {
				return fmt.Errorf("model %s: %w", mt, err)
			}
			logger.Warnf("model %s does not match the reference dataset: %v", mt, err)
		}
	}
	return nil
}

func ProvidePredictorFor(ctx context.Context, src artifact.Source, path string, kind tree.Type) predictor.ProvideFn {
	return func() (predictor.Model, error) {
		e, err := tree.Load(ctx, src, path, kind)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

func ProvideDispatcherFor(cfg *dispatcher.Config) dispatcher.ProvideFn {
	return func(models map[predictor.ModelType]dispatcher.Entry) (dispatcher.Manager, error) {
		d, err := dispatcher.New(
			models,
			dispatcher.WithStrictModelChoice(cfg.StrictModelChoice),
		)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
