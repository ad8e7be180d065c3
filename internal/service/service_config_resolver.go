package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/validators"
	"github.com/MKhiriev/go-config-keeper/models"
)

type configResolverService struct {
	registry ApplicationRegistryService
	logger   *logger.Logger
}

// NewConfigResolverService constructs the resolver on top of the registry's
// read path, inheriting its degradation behavior for backend outages.
func NewConfigResolverService(registry ApplicationRegistryService, logger *logger.Logger) ConfigResolverService {
	return &configResolverService{
		registry: registry,
		logger:   logger,
	}
}

// GetConfig resolves the configuration payload answering the request.
// Archived applications resolve exactly like nonexistent ones so that API
// consumers cannot probe archival state.
func (s *configResolverService) GetConfig(ctx context.Context, applicationID, version string) (*models.ConfigResponse, error) {
	requested, err := semver.StrictNewVersion(strings.TrimSpace(version))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	app, err := s.registry.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.Archived {
		return nil, nil
	}

	return resolveConfig(app, requested), nil
}

// resolveConfig walks the named configurations in their stored order and
// returns the first whose version set the requested version satisfies.
// Stored order is the tie-break: two configurations may both cover the same
// requested version through overlapping ranges, and the first one wins,
// deterministically for repeated identical requests. With no match the
// default configuration answers.
func resolveConfig(app *models.Application, requested *semver.Version) *models.ConfigResponse {
	for i := range app.NamedConfigs {
		nc := &app.NamedConfigs[i]
		for _, token := range nc.Versions {
			if validators.TokenMatches(token, requested) {
				return &models.ConfigResponse{
					Data:         nc.Data,
					ConfigSource: nc.Name,
				}
			}
		}
	}

	return &models.ConfigResponse{
		Data:         app.DefaultConfig,
		ConfigSource: models.ConfigSourceDefault,
	}
}
