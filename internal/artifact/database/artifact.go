package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"

	"github.com/go-aqi/aqi/internal/artifact"
	"github.com/go-aqi/aqi/internal/database"
	bolt "go.etcd.io/bbolt"
)

const bucket = "artifact:blobs"

var _ artifact.Source = (*DB)(nil)

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

// DB stores artifacts as blobs keyed by their base file name.
type DB struct {
	sDB *database.DB
}

func key(name string) []byte {
	return []byte(filepath.Base(name))
}

func (db *DB) Store(_ context.Context, name string, r io.Reader) (int, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read artifact %s: %w", name, err)
	}
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put(key(name), data); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("update transaction error: %w", err)
	}

	return len(data), nil
}

func (db *DB) Open(name string) (io.ReadCloser, error) {
	var data []byte
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if v := b.Get(key(name)); v != nil {
			// bolt values are only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", artifact.ErrNotExist, name)
	}

	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

func (db *DB) Keys() ([]string, error) {
	var keys []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})

	return keys, err
}
