package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	getApplicationDocument = `SELECT document
		FROM applications
		WHERE application_id = $1;`

	upsertApplicationDocument = `INSERT INTO applications (application_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (application_id) DO UPDATE
		SET document = EXCLUDED.document,
		    updated_at = EXCLUDED.updated_at;`
)

// buildListApplicationsQuery builds the SELECT used by ListApplications.
// placeholder selects the parameter style of the target backend
// (sq.Dollar for PostgreSQL, sq.Question for SQLite).
func buildListApplicationsQuery(placeholder sq.PlaceholderFormat) (string, []any, error) {
	query, args, err := sq.
		Select("document").
		From("applications").
		OrderBy("application_id").
		PlaceholderFormat(placeholder).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
