package store

import (
	"context"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/migrations"
)

// Storages bundles every repository the registry needs. Today that is only
// the application aggregate store; keeping the container form makes adding
// further repositories a field, not a refactor.
type Storages struct {
	ApplicationRepository ApplicationRepository
}

// NewStorages selects and initializes the storage backend from cfg:
// PostgreSQL when a DSN is configured, embedded SQLite when a file path is
// configured, and the in-memory store otherwise. Config validation already
// rejected the case where both durable backends are set.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch {
	case cfg.DB.DSN != "":
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := migrations.Migrate(db.DB); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error running database migrations")
			return nil, err
		}
		log.Info().Str("func", "NewStorages").Str("backend", "postgres").Msg("storage backend selected")

		return &Storages{ApplicationRepository: NewApplicationRepository(db, log)}, nil

	case cfg.SQLite.Path != "":
		repository, err := NewSQLiteApplicationRepository(ctx, cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		log.Info().Str("func", "NewStorages").Str("backend", "sqlite").Msg("storage backend selected")

		return &Storages{ApplicationRepository: repository}, nil

	default:
		log.Info().Str("func", "NewStorages").Str("backend", "memory").Msg("storage backend selected")

		return &Storages{ApplicationRepository: NewMemoryApplicationRepository()}, nil
	}
}
