// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/validators"
	"github.com/MKhiriev/go-config-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.ApplicationRepository
// ─────────────────────────────────────────────

type mockApplicationRepository struct {
	getFn  func(ctx context.Context, applicationID string) (models.Application, error)
	saveFn func(ctx context.Context, app models.Application) error
	listFn func(ctx context.Context) ([]models.Application, error)
}

func (m *mockApplicationRepository) GetApplication(ctx context.Context, applicationID string) (models.Application, error) {
	if m.getFn != nil {
		return m.getFn(ctx, applicationID)
	}
	return models.Application{}, store.ErrApplicationNotFound
}

func (m *mockApplicationRepository) SaveApplication(ctx context.Context, app models.Application) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepository) ListApplications(ctx context.Context) ([]models.Application, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const appearanceSchema = `{
	"type": "object",
	"properties": {
		"appearance": {
			"type": "string",
			"enum": ["bare", "standard", "tizen"]
		}
	},
	"required": ["appearance"]
}`

func validApplication(id string) models.Application {
	return models.Application{
		ApplicationID: id,
		Schema:        json.RawMessage(appearanceSchema),
		DefaultConfig: json.RawMessage(`{"appearance":"bare"}`),
		NamedConfigs: []models.NamedConfig{
			{Name: "tv", Data: json.RawMessage(`{"appearance":"tizen"}`), Versions: []string{"2.0.0"}},
		},
	}
}

func newTestRegistry(t *testing.T) (ApplicationRegistryService, store.ApplicationRepository) {
	t.Helper()

	validator, err := validators.NewConfigValidator()
	require.NoError(t, err)

	repo := store.NewMemoryApplicationRepository()
	return NewApplicationRegistryService(repo, validator, logger.Nop()), repo
}

func newMockedRegistry(t *testing.T, repo *mockApplicationRepository) ApplicationRegistryService {
	t.Helper()

	validator, err := validators.NewConfigValidator()
	require.NoError(t, err)

	return NewApplicationRegistryService(repo, validator, logger.Nop())
}

// ─────────────────────────────────────────────
// Create / Get round trip
// ─────────────────────────────────────────────

func TestCreate_RoundTrip(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	before := time.Now().UTC()
	created, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)
	assert.False(t, created.LastUpdated.Before(before))

	got, err := registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "web-dashboard", got.ApplicationID)
	assert.JSONEq(t, `{"appearance":"bare"}`, string(got.DefaultConfig))
	require.Len(t, got.NamedConfigs, 1)
	assert.Equal(t, "tv", got.NamedConfigs[0].Name)
	assert.Equal(t, created.LastUpdated, got.LastUpdated)
}

func TestCreate_TrimsApplicationID(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	app := validApplication("  web-dashboard  ")
	created, err := registry.Create(ctx, app)
	require.NoError(t, err)
	assert.Equal(t, "web-dashboard", created.ApplicationID)
}

func TestCreate_EmptyApplicationID(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Create(context.Background(), validApplication("   "))
	assert.ErrorIs(t, err, ErrEmptyApplicationID)
}

func TestCreate_AlreadyExists(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	// payload differences do not matter, only the ID
	other := validApplication("web-dashboard")
	other.DefaultConfig = json.RawMessage(`{"appearance":"standard"}`)
	_, err = registry.Create(ctx, other)
	assert.ErrorIs(t, err, ErrApplicationAlreadyExists)
}

func TestCreate_InvalidDefaultConfig(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	app := validApplication("web-dashboard")
	app.DefaultConfig = json.RawMessage(`{"appearance":"invalid-appearance"}`)

	_, err := registry.Create(ctx, app)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "default configuration", vErr.Context)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, "appearance", vErr.Issues[0].Field)

	// nothing was persisted
	got, err := registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreate_InvalidSchema(t *testing.T) {
	registry, _ := newTestRegistry(t)

	app := validApplication("web-dashboard")
	app.Schema = json.RawMessage(`{"type": 12}`)

	_, err := registry.Create(context.Background(), app)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "schema", vErr.Context)
	assert.NotEmpty(t, vErr.Issues)
}

func TestCreate_VersionConflict(t *testing.T) {
	registry, _ := newTestRegistry(t)

	app := validApplication("web-dashboard")
	app.NamedConfigs = []models.NamedConfig{
		{Name: "first", Data: json.RawMessage(`{"appearance":"bare"}`), Versions: []string{"1.0.0"}},
		{Name: "second", Data: json.RawMessage(`{"appearance":"standard"}`), Versions: []string{"1.0.0"}},
	}

	_, err := registry.Create(context.Background(), app)

	var conflict *VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "1.0.0", conflict.Version)
	assert.Equal(t, "first", conflict.FirstConfig)
	assert.Equal(t, "second", conflict.SecondConfig)
}

func TestCreate_DuplicateNamedConfigName(t *testing.T) {
	registry, _ := newTestRegistry(t)

	app := validApplication("web-dashboard")
	app.NamedConfigs = []models.NamedConfig{
		{Name: "tv", Data: json.RawMessage(`{"appearance":"tizen"}`), Versions: []string{"1.0.0"}},
		{Name: "tv", Data: json.RawMessage(`{"appearance":"bare"}`), Versions: []string{"2.0.0"}},
	}

	_, err := registry.Create(context.Background(), app)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Context, "tv")
}

func TestCreate_InvalidVersionToken(t *testing.T) {
	registry, _ := newTestRegistry(t)

	app := validApplication("web-dashboard")
	app.NamedConfigs[0].Versions = []string{"1.0.0", "not-a-version"}

	_, err := registry.Create(context.Background(), app)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, "versions[1]", vErr.Issues[0].Field)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestUpdate_MergesPartial(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	created, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	updated, err := registry.Update(ctx, "web-dashboard", models.ApplicationUpdate{
		DefaultConfig: json.RawMessage(`{"appearance":"standard"}`),
	})
	require.NoError(t, err)

	// only the default config changed
	assert.JSONEq(t, `{"appearance":"standard"}`, string(updated.DefaultConfig))
	assert.JSONEq(t, string(created.Schema), string(updated.Schema))
	require.Len(t, updated.NamedConfigs, 1)
	assert.Equal(t, "tv", updated.NamedConfigs[0].Name)
}

func TestUpdate_NotFound(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Update(context.Background(), "missing", models.ApplicationUpdate{
		DefaultConfig: json.RawMessage(`{"appearance":"bare"}`),
	})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

// A schema update that invalidates existing payloads must leave the stored
// aggregate unchanged and report every violation.
func TestUpdate_ValidationAtomicity(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	// the new schema no longer accepts "tizen", so the named config breaks
	_, err = registry.Update(ctx, "web-dashboard", models.ApplicationUpdate{
		Schema: json.RawMessage(`{
			"type": "object",
			"properties": {"appearance": {"type": "string", "enum": ["bare"]}},
			"required": ["appearance"]
		}`),
		DefaultConfig: json.RawMessage(`{"appearance":"bare"}`),
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Context, "tv")

	got, err := registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, appearanceSchema, string(got.Schema))
	assert.JSONEq(t, `{"appearance":"bare"}`, string(got.DefaultConfig))
}

// ─────────────────────────────────────────────
// Archive / Unarchive
// ─────────────────────────────────────────────

func TestArchive_FlagOnly(t *testing.T) {
	registry, repo := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	// corrupt the stored payload behind the registry's back; archive must
	// still succeed because it never re-validates
	stored, err := repo.GetApplication(ctx, "web-dashboard")
	require.NoError(t, err)
	stored.DefaultConfig = json.RawMessage(`{"appearance":"no-longer-valid"}`)
	require.NoError(t, repo.SaveApplication(ctx, stored))

	require.NoError(t, registry.Archive(ctx, "web-dashboard"))

	got, err := registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Archived)

	require.NoError(t, registry.Unarchive(ctx, "web-dashboard"))

	got, err = registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	assert.False(t, got.Archived)
}

func TestArchive_NotFound(t *testing.T) {
	registry, _ := newTestRegistry(t)

	err := registry.Archive(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

// ─────────────────────────────────────────────
// Named configurations
// ─────────────────────────────────────────────

func TestCreateNamedConfig(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	updated, err := registry.CreateNamedConfig(ctx, "web-dashboard", "kiosk",
		json.RawMessage(`{"appearance":"standard"}`), []string{"^3.0.0"})
	require.NoError(t, err)

	require.Len(t, updated.NamedConfigs, 2)
	assert.Equal(t, "kiosk", updated.NamedConfigs[1].Name)
}

func TestCreateNamedConfig_AlreadyExists(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	_, err = registry.CreateNamedConfig(ctx, "web-dashboard", "tv",
		json.RawMessage(`{"appearance":"bare"}`), []string{"3.0.0"})
	assert.ErrorIs(t, err, ErrNamedConfigAlreadyExists)
}

func TestCreateNamedConfig_InvalidData(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	_, err = registry.CreateNamedConfig(ctx, "web-dashboard", "kiosk",
		json.RawMessage(`{"appearance":"wrong"}`), []string{"3.0.0"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Context, "kiosk")

	// the aggregate was not persisted with the broken config
	got, err := registry.Get(ctx, "web-dashboard")
	require.NoError(t, err)
	require.Len(t, got.NamedConfigs, 1)
}

func TestUpdateNamedConfig(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	updated, err := registry.UpdateNamedConfig(ctx, "web-dashboard", "tv",
		json.RawMessage(`{"appearance":"standard"}`), []string{"^2.0.0"})
	require.NoError(t, err)

	require.Len(t, updated.NamedConfigs, 1)
	assert.JSONEq(t, `{"appearance":"standard"}`, string(updated.NamedConfigs[0].Data))
	assert.Equal(t, []string{"^2.0.0"}, updated.NamedConfigs[0].Versions)
}

func TestUpdateNamedConfig_NotFound(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	_, err = registry.UpdateNamedConfig(ctx, "web-dashboard", "missing",
		json.RawMessage(`{"appearance":"bare"}`), []string{"1.0.0"})
	assert.ErrorIs(t, err, ErrNamedConfigNotFound)
}

func TestDeleteNamedConfig(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	updated, err := registry.DeleteNamedConfig(ctx, "web-dashboard", "tv")
	require.NoError(t, err)
	assert.Empty(t, updated.NamedConfigs)
}

func TestDeleteNamedConfig_NotFound(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)

	_, err = registry.DeleteNamedConfig(ctx, "web-dashboard", "missing")
	assert.ErrorIs(t, err, ErrNamedConfigNotFound)
}

// ─────────────────────────────────────────────
// Backend-unavailability degradation
// ─────────────────────────────────────────────

func TestGet_BackendUnavailable_DegradesToNil(t *testing.T) {
	registry := newMockedRegistry(t, &mockApplicationRepository{
		getFn: func(_ context.Context, _ string) (models.Application, error) {
			return models.Application{}, store.ErrBackendUnavailable
		},
	})

	got, err := registry.Get(context.Background(), "web-dashboard")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList_BackendUnavailable_DegradesToEmpty(t *testing.T) {
	registry := newMockedRegistry(t, &mockApplicationRepository{
		listFn: func(_ context.Context) ([]models.Application, error) {
			return nil, store.ErrBackendUnavailable
		},
	})

	apps, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestCreate_BackendUnavailable_Propagates(t *testing.T) {
	registry := newMockedRegistry(t, &mockApplicationRepository{
		getFn: func(_ context.Context, _ string) (models.Application, error) {
			return models.Application{}, store.ErrBackendUnavailable
		},
	})

	_, err := registry.Create(context.Background(), validApplication("web-dashboard"))
	assert.ErrorIs(t, err, store.ErrBackendUnavailable)
}

func TestArchive_BackendUnavailable_Propagates(t *testing.T) {
	registry := newMockedRegistry(t, &mockApplicationRepository{
		getFn: func(_ context.Context, _ string) (models.Application, error) {
			return validApplication("web-dashboard"), nil
		},
		saveFn: func(_ context.Context, _ models.Application) error {
			return store.ErrBackendUnavailable
		},
	})

	err := registry.Archive(context.Background(), "web-dashboard")
	assert.ErrorIs(t, err, store.ErrBackendUnavailable)
}

func TestList_ReturnsAll(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Create(ctx, validApplication("api-gateway"))
	require.NoError(t, err)
	_, err = registry.Create(ctx, validApplication("web-dashboard"))
	require.NoError(t, err)
	require.NoError(t, registry.Archive(ctx, "api-gateway"))

	apps, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	// archived applications stay visible to admin listings
	assert.Equal(t, "api-gateway", apps[0].ApplicationID)
	assert.True(t, apps[0].Archived)
}
