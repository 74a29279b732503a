package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-aqi/aqi/internal/buildinfo"
	aqi "github.com/go-aqi/aqi/internal/config"
	"github.com/go-aqi/aqi/internal/importance"
	"github.com/go-aqi/aqi/internal/location"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/metric"
	"github.com/go-aqi/aqi/internal/predict"
	"github.com/go-aqi/aqi/internal/server"
	"github.com/go-aqi/aqi/internal/setup"
	"github.com/go-aqi/aqi/internal/shutdown"
)

const (
	grpcServiceName  = "aqi.Predictor"
	importancePrefix = "/importance/"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	ctx = setup.LoadEnv(ctx)
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		done()
		logger.Fatal(err)
	}

	done()
}

func run(ctx context.Context, cancel func()) error {
	logger := logging.FromContext(ctx)
	config := aqi.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(context.Background())

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	predictHandler, err := predict.NewHandler(&config.Predict, env.Service(), importancePrefix)
	if err != nil {
		return fmt.Errorf("predict.NewHandler: %w", err)
	}

	mux.Handle("/predict", predictHandler)
	mux.Handle("/states", location.NewStatesHandler(env.Service()))
	mux.Handle("/counties", location.NewCountiesHandler(env.Service()))
	mux.Handle("/models", location.NewModelsHandler(env.Service()))
	importanceHandler, err := importance.NewHandler(importancePrefix, &config.Predictor)
	if err != nil {
		return fmt.Errorf("importance.NewHandler: %w", err)
	}
	mux.Handle(importancePrefix, importanceHandler)
	mux.Handle("/health", server.HandleHealth(ctx))

	if config.MetricsEnabled {
		metricsHandler, err := metric.Register()
		if err != nil {
			return fmt.Errorf("metric.Register: %w", err)
		}
		mux.Handle("/metrics", metricsHandler)
	}

	shutdownCh := make(chan error, 2)
	go func() {
		err := srv.ServeHTTPHandler(ctx, mux)
		if err != nil {
			cancel()
		}
		shutdownCh <- err
	}()

	healthSrv, _ := server.NewHealthGRPC(grpcServiceName)
	go func() {
		err := grpcSrv.ServeGRPC(ctx, healthSrv)
		if err != nil {
			cancel()
		}
		shutdownCh <- err
	}()

	logger.Infof("serving http on %s, grpc health on %s", srv.Addr(), grpcSrv.Addr())

	for i := 0; i < cap(shutdownCh); i++ {
		if err := <-shutdownCh; err != nil {
			return err
		}
	}
	return nil
}
