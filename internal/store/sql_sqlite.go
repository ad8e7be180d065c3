package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

const (
	createSQLiteApplicationsTable = `CREATE TABLE IF NOT EXISTS applications (
		application_id TEXT PRIMARY KEY,
		document       TEXT NOT NULL,
		updated_at     DATETIME NOT NULL
	);`

	getApplicationDocumentSQLite = `SELECT document
		FROM applications
		WHERE application_id = ?;`

	upsertApplicationDocumentSQLite = `INSERT INTO applications (application_id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (application_id) DO UPDATE
		SET document = excluded.document,
		    updated_at = excluded.updated_at;`
)

// sqliteApplicationRepository is the embedded durable implementation of
// [ApplicationRepository], storing one JSON document per application in a
// local SQLite file. It exists for single-node deployments that want
// durability without running a database server; its observable behavior is
// identical to the PostgreSQL backend.
type sqliteApplicationRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteApplicationRepository opens (or creates) the SQLite database at
// cfg.Path and bootstraps the applications table.
func NewSQLiteApplicationRepository(ctx context.Context, cfg config.SQLite, log *logger.Logger) (ApplicationRepository, error) {
	// _busy_timeout keeps concurrent writers from failing immediately with
	// SQLITE_BUSY while another transaction holds the write lock.
	db, err := sql.Open("sqlite3", cfg.Path+"?_busy_timeout=5000")
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteApplicationRepository").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// SQLite serializes writes through a single connection anyway.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, createSQLiteApplicationsTable); err != nil {
		log.Err(err).Str("func", "NewSQLiteApplicationRepository").Msg("error bootstrapping applications table")
		return nil, fmt.Errorf("error bootstrapping applications table: %w", err)
	}
	log.Info().Str("func", "NewSQLiteApplicationRepository").Str("path", cfg.Path).Msg("sqlite storage ready")

	return &sqliteApplicationRepository{db: db, logger: log}, nil
}

// GetApplication fetches and decodes the document stored under applicationID.
func (s *sqliteApplicationRepository) GetApplication(ctx context.Context, applicationID string) (models.Application, error) {
	log := logger.FromContext(ctx)

	var document []byte
	err := s.db.QueryRowContext(ctx, getApplicationDocumentSQLite, applicationID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, fmt.Errorf("%w: %q", ErrApplicationNotFound, applicationID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteApplicationRepository.GetApplication").
			Str("application_id", applicationID).
			Msg("failed to execute query for getting application document")
		return models.Application{}, classifySQLiteError(err)
	}

	return decodeApplicationDocument(document)
}

// SaveApplication upserts the whole aggregate as a single JSON document.
func (s *sqliteApplicationRepository) SaveApplication(ctx context.Context, app models.Application) error {
	log := logger.FromContext(ctx)

	document, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	_, err = s.db.ExecContext(ctx, upsertApplicationDocumentSQLite, app.ApplicationID, document, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "sqliteApplicationRepository.SaveApplication").
			Str("application_id", app.ApplicationID).
			Msg("failed to execute upsert for application document")
		return classifySQLiteError(err)
	}

	return nil
}

// ListApplications returns every stored aggregate ordered by application ID.
func (s *sqliteApplicationRepository) ListApplications(ctx context.Context) ([]models.Application, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListApplicationsQuery(sq.Question)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteApplicationRepository.ListApplications").
			Msg("failed to execute query for listing application documents")
		return nil, classifySQLiteError(err)
	}
	defer rows.Close()

	return scanApplicationDocuments(rows)
}

// classifySQLiteError maps lock/contention conditions to
// [ErrBackendUnavailable]; everything else is a persistent query failure.
func classifySQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrFull:
			return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
