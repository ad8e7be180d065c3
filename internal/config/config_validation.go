// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN != "" && cfg.Storage.SQLite.Path != "" {
		return ErrAmbiguousStorageConfigs
	}

	if cfg.Cache.NamedMaxAge <= 0 || cfg.Cache.DefaultMaxAge <= 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}
