package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

// DB wraps the shared *sql.DB handle together with the error classifier and
// the per-query timeout applied by the repositories built on top of it.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	queryTimeout       time.Duration
	logger             *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection for the durable backend
// and verifies it with a ping bounded by cfg.ConnectTimeout. A bounded
// timeout is mandatory: a backend outage must surface as an error instead of
// blocking the registry.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database within the bounded connect timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err = conn.PingContext(pingCtx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		queryTimeout:       cfg.QueryTimeout,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// queryContext returns a context bounded by the configured query timeout.
// With no timeout configured the parent context is returned unchanged.
func (d *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.queryTimeout)
}

// classify wraps err with [ErrBackendUnavailable] when the classifier deems
// the failure a connectivity-class condition, and with fallback otherwise.
func (d *DB) classify(err, fallback error) error {
	if d.errorClassificator != nil && d.errorClassificator.Classify(err) == Unavailable {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
