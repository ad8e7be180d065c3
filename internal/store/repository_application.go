package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/models"
)

// applicationRepository is the PostgreSQL-backed implementation of
// [ApplicationRepository]. Each application is stored as a single JSONB
// document in the "applications" table, keyed by application_id; the
// registry always writes whole aggregates, so no partial-document SQL is
// needed.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields.
type applicationRepository struct {
	*DB
	logger *logger.Logger
}

// NewApplicationRepository constructs an [ApplicationRepository] backed by
// the provided database connection and logger.
func NewApplicationRepository(db *DB, logger *logger.Logger) ApplicationRepository {
	return &applicationRepository{
		DB:     db,
		logger: logger,
	}
}

// GetApplication fetches the document stored under applicationID and decodes
// it back into the aggregate.
//
// Returns an error wrapping [ErrApplicationNotFound] when no row exists, and
// an error wrapping [ErrBackendUnavailable] when the backend cannot be
// reached within the query timeout.
func (a *applicationRepository) GetApplication(ctx context.Context, applicationID string) (models.Application, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := a.DB.queryContext(ctx)
	defer cancel()

	var document []byte
	err := a.DB.QueryRowContext(ctx, getApplicationDocument, applicationID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, fmt.Errorf("%w: %q", ErrApplicationNotFound, applicationID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.GetApplication").
			Str("application_id", applicationID).
			Msg("failed to execute query for getting application document")
		return models.Application{}, a.DB.classify(err, ErrExecutingQuery)
	}

	app, err := decodeApplicationDocument(document)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.GetApplication").
			Str("application_id", applicationID).
			Msg("failed to decode application document")
		return models.Application{}, err
	}

	return app, nil
}

// SaveApplication upserts the whole aggregate as a single JSONB document.
func (a *applicationRepository) SaveApplication(ctx context.Context, app models.Application) error {
	log := logger.FromContext(ctx)

	document, err := json.Marshal(app)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.SaveApplication").
			Str("application_id", app.ApplicationID).
			Msg("failed to encode application document")
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	ctx, cancel := a.DB.queryContext(ctx)
	defer cancel()

	_, err = a.DB.ExecContext(ctx, upsertApplicationDocument, app.ApplicationID, document, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.SaveApplication").
			Str("application_id", app.ApplicationID).
			Msg("failed to execute upsert for application document")
		return a.DB.classify(err, ErrExecutingQuery)
	}

	log.Debug().
		Str("func", "applicationRepository.SaveApplication").
		Str("application_id", app.ApplicationID).
		Msg("application document persisted")

	return nil
}

// ListApplications returns every stored aggregate ordered by application ID.
func (a *applicationRepository) ListApplications(ctx context.Context) ([]models.Application, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListApplicationsQuery(sq.Dollar)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.ListApplications").
			Msg("failed to build list query")
		return nil, err
	}

	ctx, cancel := a.DB.queryContext(ctx)
	defer cancel()

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.ListApplications").
			Msg("failed to execute query for listing application documents")
		return nil, a.DB.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	apps, err := scanApplicationDocuments(rows)
	if err != nil {
		log.Err(err).
			Str("func", "applicationRepository.ListApplications").
			Msg("failed to scan application documents")
		return nil, err
	}

	return apps, nil
}

// scanApplicationDocuments drains rows of single-column document results and
// decodes each into an aggregate.
func scanApplicationDocuments(rows *sql.Rows) ([]models.Application, error) {
	apps := make([]models.Application, 0, 16)

	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		app, err := decodeApplicationDocument(document)
		if err != nil {
			return nil, err
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return apps, nil
}

func decodeApplicationDocument(document []byte) (models.Application, error) {
	var app models.Application
	if err := json.Unmarshal(document, &app); err != nil {
		return models.Application{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	return app, nil
}
