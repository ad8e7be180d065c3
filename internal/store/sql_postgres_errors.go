package store

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It indicates whether a failed database
// operation is a connectivity-class condition that should surface as
// [ErrBackendUnavailable], or a persistent failure of the statement itself.
type ErrorClassification int

const (
	// Persistent indicates that the failure is inherent to the statement or
	// data (constraint violations, syntax errors, data exceptions) and will
	// not go away by retrying. This is the default classification for
	// unrecognised errors.
	Persistent ErrorClassification = iota

	// Unavailable indicates that the backend could not serve the operation
	// for connectivity, authentication, or resource-exhaustion reasons, and
	// the same operation may succeed once the backend recovers.
	Unavailable
)

// ErrorClassificator classifies low-level database errors so that
// repositories can translate them into the registry's error taxonomy.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver, falling back
// to network-level error detection for failures that never reached the
// server.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Connection-level failures (net
// errors, cancelled dials, context deadlines) and connectivity-class
// PostgreSQL codes map to [Unavailable]; everything else is [Persistent].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return Persistent
	}

	// Attempt to unwrap to a pgconn.PgError.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	// Failures that never produced a server response: refused connections,
	// DNS errors, timed-out dials and queries.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Unavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Unavailable
	}

	// Default: treat unrecognised errors as persistent.
	return Persistent
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Unavailable codes:
//   - Class 08 — connection exceptions
//   - Class 28 — invalid authorization (credentials rotated or revoked)
//   - Class 40 — transaction rollback, serialization failure, deadlock
//   - Class 53 — insufficient resources
//   - Class 57 — cannot connect now, admin shutdown
//
// Any other code is classified as [Persistent].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	// Class 08 — connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Unavailable

	// Class 28 — invalid authorization specification
	case pgerrcode.InvalidAuthorizationSpecification,
		pgerrcode.InvalidPassword:
		return Unavailable

	// Class 40 — transaction rollback
	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Unavailable

	// Class 53 — insufficient resources
	case pgerrcode.InsufficientResources,
		pgerrcode.TooManyConnections,
		pgerrcode.OutOfMemory,
		pgerrcode.DiskFull:
		return Unavailable

	// Class 57 — operator intervention
	case pgerrcode.CannotConnectNow, // 57P03
		pgerrcode.AdminShutdown: // 57P01
		return Unavailable
	}

	// Default: treat unrecognised codes as persistent.
	return Persistent
}
