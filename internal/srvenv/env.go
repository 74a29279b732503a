package srvenv

import (
	"context"

	"github.com/go-aqi/aqi/internal/artifact"
	"github.com/go-aqi/aqi/internal/database"
	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/dispatcher"
	"github.com/go-aqi/aqi/internal/encoder"
	"github.com/go-aqi/aqi/internal/service"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

// SrvEnv holds the process-wide singletons built at startup. Everything but
// the database handle is read-only after Setup returns.
type SrvEnv struct {
	database   *database.DB
	source     artifact.Source
	dataset    *dataset.Dataset
	encoder    *encoder.Encoder
	dispatcher dispatcher.Manager
	service    *service.Service
}

func (s *SrvEnv) Source() artifact.Source {
	return s.source
}

func (s *SrvEnv) Dataset() *dataset.Dataset {
	return s.dataset
}

func (s *SrvEnv) Encoder() *encoder.Encoder {
	return s.encoder
}

func (s *SrvEnv) Dispatcher() dispatcher.Manager {
	return s.dispatcher
}

func (s *SrvEnv) Service() *service.Service {
	return s.service
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func WithSource(src artifact.Source) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.source = src
		return s
	}
}

func WithDataset(ds *dataset.Dataset) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.dataset = ds
		return s
	}
}

func WithEncoder(enc *encoder.Encoder) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.encoder = enc
		return s
	}
}

func WithDispatcher(d dispatcher.Manager) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.dispatcher = d
		return s
	}
}

func WithService(svc *service.Service) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.service = svc
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
