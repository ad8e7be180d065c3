// Package service implements the business logic of the configuration
// registry: aggregate validation, registry-wide invariants, and version
// resolution. Services sit between the HTTP handlers and the store and own
// every rule that must hold regardless of transport or backend.
package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-config-keeper/models"
)

// ApplicationRegistryService is the CRUD surface over application
// aggregates. Every mutation re-validates the resulting aggregate as a whole
// before persisting, with two deliberate exceptions: Archive/Unarchive flip
// the flag only, and DeleteNamedConfig removes an entry without re-running
// schema validation (removal cannot introduce invalid data).
//
// Mutations on the same application ID are serialized internally so that two
// concurrent read-modify-write cycles cannot interleave.
type ApplicationRegistryService interface {
	// List returns every application, archived and active. Backend
	// unavailability degrades to an empty list.
	List(ctx context.Context) ([]models.Application, error)

	// Get returns the aggregate or nil when absent. It never errors on
	// missing applications; backend unavailability degrades to nil.
	Get(ctx context.Context, applicationID string) (*models.Application, error)

	Create(ctx context.Context, app models.Application) (models.Application, error)
	Update(ctx context.Context, applicationID string, update models.ApplicationUpdate) (models.Application, error)

	Archive(ctx context.Context, applicationID string) error
	Unarchive(ctx context.Context, applicationID string) error

	CreateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error)
	UpdateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error)
	DeleteNamedConfig(ctx context.Context, applicationID, name string) (models.Application, error)
}

// ConfigResolverService answers configuration lookups by concrete version.
type ConfigResolverService interface {
	// GetConfig resolves which configuration payload answers the request.
	// It returns nil for unknown and for archived applications — callers
	// must not be able to distinguish the two. [ErrInvalidVersion] is
	// returned when version is not a syntactically valid semantic version.
	GetConfig(ctx context.Context, applicationID, version string) (*models.ConfigResponse, error)
}
