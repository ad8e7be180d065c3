// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the persistence backends of the configuration
// registry. All backends implement the same narrow contract over whole
// Application aggregates: atomic get/put/list keyed by application ID, with
// read-your-writes consistency within a single backend instance.
//
// Three backends are available:
//   - a volatile in-memory store (the default),
//   - a PostgreSQL document store reachable over the network,
//   - an embedded SQLite document store for single-node deployments.
//
// All backends must exhibit identical observable behavior to the registry;
// the registry never issues partial-document updates.
package store

import (
	"context"

	"github.com/MKhiriev/go-config-keeper/models"
)

// ApplicationRepository is the storage contract the registry depends on.
//
// Implementations must return aggregates that do not alias internal state
// (callers may mutate what they get back) and must surface connectivity or
// resource-exhaustion failures as errors wrapping [ErrBackendUnavailable]
// so the registry can distinguish them from domain conditions.
type ApplicationRepository interface {

	// GetApplication returns the aggregate stored under applicationID,
	// or an error wrapping [ErrApplicationNotFound].
	GetApplication(ctx context.Context, applicationID string) (models.Application, error)

	// SaveApplication persists the whole aggregate under its ApplicationID,
	// inserting or replacing atomically.
	SaveApplication(ctx context.Context, app models.Application) error

	// ListApplications returns every stored aggregate, archived included,
	// ordered by application ID.
	ListApplications(ctx context.Context) ([]models.Application, error)
}
