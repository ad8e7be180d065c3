package service

import (
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/store"
	"github.com/MKhiriev/go-config-keeper/internal/validators"
)

type Services struct {
	ApplicationRegistryService ApplicationRegistryService
	ConfigResolverService      ConfigResolverService
}

func NewServices(storages *store.Storages, logger *logger.Logger) (*Services, error) {
	validator, err := validators.NewConfigValidator()
	if err != nil {
		return nil, err
	}

	registry := NewApplicationRegistryService(storages.ApplicationRepository, validator, logger)

	return &Services{
		ApplicationRegistryService: registry,
		ConfigResolverService:      NewConfigResolverService(registry, logger),
	}, nil
}
