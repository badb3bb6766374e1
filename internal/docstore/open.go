package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"club-signup/internal/common/config"
	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/common/logger"
	"club-signup/internal/common/metrics"
	"club-signup/internal/models"
)

// Open builds the store selected by cfg.Store.Driver and checks that it is
// reachable. The returned store records write metrics.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, error) {
	driver := cfg.Store.Driver
	var store Store

	switch driver {
	case "memory":
		store = NewMemoryStore()

	case "elasticsearch":
		client, err := NewElasticsearchClient(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, apperrors.NewStoreConnectionFailedError(driver, err)
		}
		store = NewElasticsearchStore(client, IndexPrefix(cfg), cfg.Database.Elasticsearch.Refresh)

	case "redis":
		store = NewRedisStore(NewRedisClient(cfg.Database.Redis))

	case "postgres":
		db, err := OpenPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, apperrors.NewStoreConnectionFailedError(driver, err)
		}
		store = NewPostgresStore(db)

	default:
		return nil, apperrors.NewStoreConnectionFailedError(driver, fmt.Errorf("unknown store driver %q", driver))
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, apperrors.NewStoreConnectionFailedError(driver, err)
	}

	if pg, ok := store.(*PostgresStore); ok {
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, apperrors.NewStoreConnectionFailedError(driver, err)
		}
	}

	log.Info("document store ready", map[string]interface{}{
		"driver":    driver,
		"projectId": cfg.Project.ProjectID,
	})

	return Instrument(store, driver, log), nil
}

// IndexPrefix returns the configured index prefix, or "<projectId>-" when
// none is set.
func IndexPrefix(cfg *config.Config) string {
	if cfg.Database.Elasticsearch.IndexPrefix != "" {
		return cfg.Database.Elasticsearch.IndexPrefix
	}
	if cfg.Project.ProjectID == "" {
		return ""
	}
	return strings.ToLower(cfg.Project.ProjectID) + "-"
}

// instrumented records write latency per backend and outcome.
type instrumented struct {
	Store
	backend string
	logger  logger.Logger
}

// Instrument wraps s so every Create is timed and failures are logged.
func Instrument(s Store, backend string, log logger.Logger) Store {
	return &instrumented{
		Store:   s,
		backend: backend,
		logger:  log.WithFields(map[string]interface{}{"backend": backend}),
	}
}

func (i *instrumented) Create(ctx context.Context, collection, id string, app models.Application) error {
	start := time.Now()
	err := i.Store.Create(ctx, collection, id, app)

	outcome := "ok"
	if err != nil {
		stdErr := apperrors.Normalize(err)
		outcome = string(stdErr.Code)
		i.logger.Warn("document write failed", map[string]interface{}{
			"collection": collection,
			"documentId": id,
			"errorCode":  outcome,
			"retryable":  apperrors.IsRetryableErrorCode(stdErr.Code),
			"error":      err,
		})
	}
	metrics.DocumentWriteDuration.WithLabelValues(i.backend, outcome).Observe(time.Since(start).Seconds())
	return err
}

// Unwrap returns the underlying store.
func (i *instrumented) Unwrap() Store {
	return i.Store
}
