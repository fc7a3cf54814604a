package db

import (
	"context"
	"fmt"

	"github.com/dsjohal14/mflix/internal/libs/config"
)

// Open returns the movie store selected by cfg.Backend.
// The Mongo backend connects lazily on first lookup.
func Open(ctx context.Context, cfg *config.Config) (MovieFinder, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return NewMongoStore(NewMongoProvider(cfg.MongoURI)), nil
	case config.BackendPostgres:
		pg, err := New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pg), nil
	case config.BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
