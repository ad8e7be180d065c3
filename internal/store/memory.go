package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/go-config-keeper/models"
)

// memoryApplicationRepository is the volatile in-process implementation of
// [ApplicationRepository]. State lives for the lifetime of the instance and
// is lost on restart.
//
// The store is an explicit instance owned by whoever constructs it — never a
// package-level singleton — so tests and multiple registries can each hold
// independent state.
type memoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]models.Application
}

// NewMemoryApplicationRepository constructs an empty in-memory
// [ApplicationRepository].
func NewMemoryApplicationRepository() ApplicationRepository {
	return &memoryApplicationRepository{
		apps: make(map[string]models.Application),
	}
}

// GetApplication returns a deep copy of the stored aggregate so that callers
// can never mutate store state through the returned value.
func (m *memoryApplicationRepository) GetApplication(_ context.Context, applicationID string) (models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[applicationID]
	if !ok {
		return models.Application{}, ErrApplicationNotFound
	}

	return app.Clone(), nil
}

// SaveApplication stores a deep copy of the aggregate, inserting or
// replacing the previous state atomically.
func (m *memoryApplicationRepository) SaveApplication(_ context.Context, app models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apps[app.ApplicationID] = app.Clone()
	return nil
}

// ListApplications returns deep copies of every stored aggregate, ordered by
// application ID for deterministic listings.
func (m *memoryApplicationRepository) ListApplications(_ context.Context) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]models.Application, 0, len(m.apps))
	for _, app := range m.apps {
		apps = append(apps, app.Clone())
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].ApplicationID < apps[j].ApplicationID
	})

	return apps, nil
}
