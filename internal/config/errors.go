package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or contradictory.
var (
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, an empty listen address after all sources were merged).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrAmbiguousStorageConfigs indicates that more than one durable
	// backend was configured; the registry runs on exactly one backend.
	ErrAmbiguousStorageConfigs = errors.New("ambiguous storage configuration: both postgres DSN and sqlite path are set")
	// ErrInvalidCacheConfigs indicates non-positive cache-control durations.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
)
