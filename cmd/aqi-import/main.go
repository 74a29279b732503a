// Command aqi-import copies the reference dataset and the model artifacts
// into the bolt artifact store read by aqi-srv when AQI_DB_FILE is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	artifactDb "github.com/go-aqi/aqi/internal/artifact/database"
	"github.com/go-aqi/aqi/internal/database"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/setup"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	ctx := setup.LoadEnv(context.Background())
	logger := logging.FromContext(ctx)
	if err := run(ctx, os.Args[1:]); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	logger := logging.FromContext(ctx)
	fs := flag.NewFlagSet("aqi-import", flag.ContinueOnError)
	dbFile := fs.String("db", "", "bolt file to write, defaults to AQI_DB_FILE")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: aqi-import [-db file] artifact...")
	}

	var cfg database.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	if *dbFile != "" {
		cfg.FileName = *dbFile
	}
	if !cfg.Enabled() {
		return fmt.Errorf("no database file: set AQI_DB_FILE or pass -db")
	}

	db, err := database.NewFromEnv(ctx, &cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)
	store := artifactDb.New(db)

	for _, path := range fs.Args() {
		if err := importFile(ctx, store, path); err != nil {
			return err
		}
	}

	keys, err := store.Keys()
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	logger.Infof("artifact store %s holds %v", cfg.FileName, keys)
	return nil
}

func importFile(ctx context.Context, store *artifactDb.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n, err := store.Store(ctx, path, f)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Infof("imported %s, %d bytes", path, n)
	return nil
}
