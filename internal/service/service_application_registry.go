package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/utils"
	"github.com/MKhiriev/go-config-keeper/internal/validators"
	"github.com/MKhiriev/go-config-keeper/models"
)

type applicationRegistryService struct {
	repository store.ApplicationRepository
	validator  validators.ConfigValidator

	// keys serializes read-modify-write cycles per application ID. Operations
	// on distinct applications proceed concurrently.
	keys *utils.KeyMutex

	logger *logger.Logger
}

// NewApplicationRegistryService constructs the registry on top of the given
// repository and validation engine.
func NewApplicationRegistryService(repository store.ApplicationRepository, validator validators.ConfigValidator, logger *logger.Logger) ApplicationRegistryService {
	return &applicationRegistryService{
		repository: repository,
		validator:  validator,
		keys:       utils.NewKeyMutex(),
		logger:     logger,
	}
}

// List returns all applications, archived and active. Backend unavailability
// is logged and masked as an empty listing so that reads stay available
// during transient storage outages.
func (s *applicationRegistryService) List(ctx context.Context) ([]models.Application, error) {
	log := logger.FromContext(ctx)

	apps, err := s.repository.ListApplications(ctx)
	if errors.Is(err, store.ErrBackendUnavailable) {
		log.Warn().Err(err).
			Str("func", "applicationRegistryService.List").
			Msg("storage backend unavailable, degrading to empty listing")
		return []models.Application{}, nil
	}
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Get returns the aggregate, or nil when the application does not exist.
// Backend unavailability is logged and masked as nil, same as List.
func (s *applicationRegistryService) Get(ctx context.Context, applicationID string) (*models.Application, error) {
	log := logger.FromContext(ctx)
	applicationID = strings.TrimSpace(applicationID)

	app, err := s.repository.GetApplication(ctx, applicationID)
	switch {
	case errors.Is(err, store.ErrApplicationNotFound):
		return nil, nil
	case errors.Is(err, store.ErrBackendUnavailable):
		log.Warn().Err(err).
			Str("func", "applicationRegistryService.Get").
			Str("application_id", applicationID).
			Msg("storage backend unavailable, degrading to not found")
		return nil, nil
	case err != nil:
		return nil, err
	}

	return &app, nil
}

// Create validates the full aggregate and persists it. The application ID is
// trimmed and must be unique across the registry.
func (s *applicationRegistryService) Create(ctx context.Context, app models.Application) (models.Application, error) {
	log := logger.FromContext(ctx)

	app.ApplicationID = strings.TrimSpace(app.ApplicationID)
	if app.ApplicationID == "" {
		return models.Application{}, ErrEmptyApplicationID
	}

	s.keys.Lock(app.ApplicationID)
	defer s.keys.Unlock(app.ApplicationID)

	_, err := s.repository.GetApplication(ctx, app.ApplicationID)
	switch {
	case err == nil:
		return models.Application{}, fmt.Errorf("%w: %q", ErrApplicationAlreadyExists, app.ApplicationID)
	case !errors.Is(err, store.ErrApplicationNotFound):
		// write path: backend unavailability propagates
		return models.Application{}, err
	}

	if err := s.validateAggregate(ctx, app); err != nil {
		return models.Application{}, err
	}

	app.LastUpdated = time.Now().UTC()
	if err := s.repository.SaveApplication(ctx, app); err != nil {
		return models.Application{}, err
	}

	log.Info().
		Str("func", "applicationRegistryService.Create").
		Str("application_id", app.ApplicationID).
		Int("named_configs", len(app.NamedConfigs)).
		Msg("application created")

	return app, nil
}

// Update merges the partial update onto the stored aggregate and persists the
// merged whole. Whenever the schema, default configuration, or named
// configurations participate in the update, the entire merged result is
// re-validated — validation is never incremental.
func (s *applicationRegistryService) Update(ctx context.Context, applicationID string, update models.ApplicationUpdate) (models.Application, error) {
	log := logger.FromContext(ctx)
	applicationID = strings.TrimSpace(applicationID)

	s.keys.Lock(applicationID)
	defer s.keys.Unlock(applicationID)

	current, err := s.loadForWrite(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}

	merged := current.Clone()
	overlay := models.Application{
		Schema:        update.Schema,
		DefaultConfig: update.DefaultConfig,
		NamedConfigs:  update.NamedConfigs,
	}
	if err := mergo.Merge(&merged, overlay, mergo.WithOverride); err != nil {
		return models.Application{}, fmt.Errorf("error merging application update: %w", err)
	}

	if update.Schema != nil || update.DefaultConfig != nil || len(update.NamedConfigs) > 0 {
		if err := s.validateAggregate(ctx, merged); err != nil {
			return models.Application{}, err
		}
	}

	merged.LastUpdated = time.Now().UTC()
	if err := s.repository.SaveApplication(ctx, merged); err != nil {
		return models.Application{}, err
	}

	log.Info().
		Str("func", "applicationRegistryService.Update").
		Str("application_id", applicationID).
		Msg("application updated")

	return merged, nil
}

// Archive excludes the application from config resolution. Flag-only
// mutation: the aggregate is persisted without re-running validation.
func (s *applicationRegistryService) Archive(ctx context.Context, applicationID string) error {
	return s.setArchived(ctx, applicationID, true)
}

// Unarchive makes the application visible to config resolution again.
func (s *applicationRegistryService) Unarchive(ctx context.Context, applicationID string) error {
	return s.setArchived(ctx, applicationID, false)
}

func (s *applicationRegistryService) setArchived(ctx context.Context, applicationID string, archived bool) error {
	log := logger.FromContext(ctx)
	applicationID = strings.TrimSpace(applicationID)

	s.keys.Lock(applicationID)
	defer s.keys.Unlock(applicationID)

	app, err := s.loadForWrite(ctx, applicationID)
	if err != nil {
		return err
	}

	app.Archived = archived
	app.LastUpdated = time.Now().UTC()
	if err := s.repository.SaveApplication(ctx, app); err != nil {
		return err
	}

	log.Info().
		Str("func", "applicationRegistryService.setArchived").
		Str("application_id", applicationID).
		Bool("archived", archived).
		Msg("application archival state changed")

	return nil
}

// CreateNamedConfig appends a new named configuration and re-validates the
// merged aggregate. Fails when the name is already taken.
func (s *applicationRegistryService) CreateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error) {
	applicationID = strings.TrimSpace(applicationID)

	s.keys.Lock(applicationID)
	defer s.keys.Unlock(applicationID)

	app, err := s.loadForWrite(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}

	if _, i := app.NamedConfig(name); i >= 0 {
		return models.Application{}, fmt.Errorf("%w: %q in application %q", ErrNamedConfigAlreadyExists, name, applicationID)
	}

	app.NamedConfigs = append(app.NamedConfigs, models.NamedConfig{
		Name:     name,
		Data:     data,
		Versions: versions,
	})

	return s.persistValidated(ctx, app)
}

// UpdateNamedConfig replaces the data and versions of an existing named
// configuration in place, preserving its position in the stored order, and
// re-validates the merged aggregate.
func (s *applicationRegistryService) UpdateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error) {
	applicationID = strings.TrimSpace(applicationID)

	s.keys.Lock(applicationID)
	defer s.keys.Unlock(applicationID)

	app, err := s.loadForWrite(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}

	_, i := app.NamedConfig(name)
	if i < 0 {
		return models.Application{}, fmt.Errorf("%w: %q in application %q", ErrNamedConfigNotFound, name, applicationID)
	}

	app.NamedConfigs[i].Data = data
	app.NamedConfigs[i].Versions = versions

	return s.persistValidated(ctx, app)
}

// DeleteNamedConfig removes the entry and persists without re-running schema
// validation: removal cannot introduce new invalid data.
func (s *applicationRegistryService) DeleteNamedConfig(ctx context.Context, applicationID, name string) (models.Application, error) {
	log := logger.FromContext(ctx)
	applicationID = strings.TrimSpace(applicationID)

	s.keys.Lock(applicationID)
	defer s.keys.Unlock(applicationID)

	app, err := s.loadForWrite(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}

	_, i := app.NamedConfig(name)
	if i < 0 {
		return models.Application{}, fmt.Errorf("%w: %q in application %q", ErrNamedConfigNotFound, name, applicationID)
	}

	app.NamedConfigs = append(app.NamedConfigs[:i], app.NamedConfigs[i+1:]...)
	app.LastUpdated = time.Now().UTC()

	if err := s.repository.SaveApplication(ctx, app); err != nil {
		return models.Application{}, err
	}

	log.Info().
		Str("func", "applicationRegistryService.DeleteNamedConfig").
		Str("application_id", applicationID).
		Str("config_name", name).
		Msg("named configuration deleted")

	return app, nil
}

// loadForWrite fetches the aggregate for a read-modify-write cycle. Unlike
// the public Get, it propagates backend unavailability: a write operation
// must fail loudly instead of silently starting from empty state.
func (s *applicationRegistryService) loadForWrite(ctx context.Context, applicationID string) (models.Application, error) {
	app, err := s.repository.GetApplication(ctx, applicationID)
	if errors.Is(err, store.ErrApplicationNotFound) {
		return models.Application{}, fmt.Errorf("%w: %q", ErrApplicationNotFound, applicationID)
	}
	if err != nil {
		return models.Application{}, err
	}

	return app, nil
}

// persistValidated runs full aggregate validation, stamps LastUpdated, and
// saves. Shared by the named-configuration mutations.
func (s *applicationRegistryService) persistValidated(ctx context.Context, app models.Application) (models.Application, error) {
	if err := s.validateAggregate(ctx, app); err != nil {
		return models.Application{}, err
	}

	app.LastUpdated = time.Now().UTC()
	if err := s.repository.SaveApplication(ctx, app); err != nil {
		return models.Application{}, err
	}

	return app, nil
}
