// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed HTTP client for the configuration
// registry's REST API.
//
// The primary abstraction is [RegistryClient], which decouples callers (the
// configctl administration tool) from the wire protocol. Error values defined
// in errors.go are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] for transport-agnostic error handling
// (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-config-keeper/models"
)

// RegistryClient defines communication with the configuration registry
// server. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type RegistryClient interface {
	ListApplications(ctx context.Context) ([]models.Application, error)
	GetApplication(ctx context.Context, applicationID string) (models.Application, error)
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
	UpdateApplication(ctx context.Context, applicationID string, update models.ApplicationUpdate) (models.Application, error)

	ArchiveApplication(ctx context.Context, applicationID string) error
	UnarchiveApplication(ctx context.Context, applicationID string) error

	CreateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error)
	UpdateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error)
	DeleteNamedConfig(ctx context.Context, applicationID, name string) (models.Application, error)

	// GetConfig exercises the public lookup endpoint, resolving the
	// configuration payload for a concrete version.
	GetConfig(ctx context.Context, applicationID, version string) (models.ConfigResponse, error)
}
