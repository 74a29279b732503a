package database

import (
	"context"
	"fmt"

	"github.com/go-aqi/aqi/internal/logging"
	bolt "go.etcd.io/bbolt"
)

type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	return open(ctx, config, false)
}

// NewReadOnly opens the bolt file with a shared lock so that several
// server processes can read the same artifact store.
func NewReadOnly(ctx context.Context, config *Config) (*DB, error) {
	return open(ctx, config, true)
}

func open(ctx context.Context, config *Config, readOnly bool) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("creating db connection, file: %s, read only: %v", config.FileName, readOnly)

	db, err := bolt.Open(config.FileName, 0600, &bolt.Options{Timeout: config.Timeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("creating connection Db: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing DB connection")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error close Db connection: %w", err)
	}

	return nil
}
