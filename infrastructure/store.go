package infrastructure

import (
	"context"

	"job-board/config"
	"job-board/domain"
)

// OpenJobStore connects the backend selected by cfg.Driver.
func OpenJobStore(ctx context.Context, cfg config.Database, logLevel string) (domain.JobStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryJobStore(), nil
	case config.DriverMongo:
		store, err := NewMongoJobStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		db, err := NewSQLConnection(cfg, logLevel)
		if err != nil {
			return nil, err
		}
		return NewJobRepository(db), nil
	}
}
