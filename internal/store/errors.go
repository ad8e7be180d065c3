package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrApplicationNotFound is returned when a get targets an application
	// ID with no stored aggregate.
	ErrApplicationNotFound = errors.New("application was not found")

	// ErrBackendUnavailable is returned (wrapped) when the durable backend
	// cannot be reached or refuses the operation for connectivity,
	// authentication, or resource-exhaustion reasons. The condition is
	// retryable; the registry masks it on read paths and propagates it on
	// write paths.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails for a non-connectivity reason.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan application row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan application rows")

	// ErrEncodingDocument is returned when an aggregate cannot be marshalled
	// into its JSON document form before persistence.
	ErrEncodingDocument = errors.New("failed to encode application document")

	// ErrDecodingDocument is returned when a stored JSON document cannot be
	// unmarshalled back into an aggregate.
	ErrDecodingDocument = errors.New("failed to decode application document")
)
