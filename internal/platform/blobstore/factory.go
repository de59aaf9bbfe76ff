package blobstore

import (
	"context"
	"fmt"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/db"
)

// Config selects and parameterises a backend.
type Config struct {
	Driver      Driver
	Dir         string
	S3          S3Config
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32
}

// Open returns the store selected by cfg.Driver. The returned close func
// releases backend resources and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case DriverFilesystem, "":
		s, err := NewFSStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case DriverMemory:
		return NewMemoryStore(), noop, nil
	case DriverS3:
		s, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, noop, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
