package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/models"
)

// validateAggregate checks the whole application against the registry
// invariants:
//
//   - the schema is a structurally valid JSON-Schema document
//   - the default configuration validates against the schema
//   - every named configuration's data validates against the schema
//   - every version token is syntactically a valid semver or range
//   - named configuration names are unique within the application
//   - no two named configurations list the identical literal version token
//
// Areas are checked in that order and the first failing area is reported
// with its complete issue list. The schema gate comes first: payloads cannot
// be meaningfully validated against a schema that does not compile.
func (s *applicationRegistryService) validateAggregate(ctx context.Context, app models.Application) error {
	if issues := s.validator.ValidateSchema(ctx, app.Schema); len(issues) > 0 {
		return &ValidationError{Context: "schema", Issues: issues}
	}

	if issues := s.validator.ValidateData(ctx, app.DefaultConfig, app.Schema); len(issues) > 0 {
		return &ValidationError{Context: "default configuration", Issues: issues}
	}

	seenNames := make(map[string]struct{}, len(app.NamedConfigs))
	claimedTokens := make(map[string]string) // literal version token -> claiming config name

	for _, nc := range app.NamedConfigs {
		label := fmt.Sprintf("named configuration %q", nc.Name)

		if _, dup := seenNames[nc.Name]; dup {
			return &ValidationError{
				Context: label,
				Issues: []models.ValidationIssue{{
					Field:   "namedConfigs",
					Message: fmt.Sprintf("duplicate configuration name %q", nc.Name),
					Value:   nc.Name,
				}},
			}
		}
		seenNames[nc.Name] = struct{}{}

		issues := s.validator.ValidateData(ctx, nc.Data, app.Schema)
		issues = append(issues, s.validator.ValidateVersions(ctx, nc.Versions)...)
		if len(issues) > 0 {
			return &ValidationError{Context: label, Issues: issues}
		}

		for _, token := range nc.Versions {
			if first, claimed := claimedTokens[token]; claimed {
				return &VersionConflictError{
					Version:      token,
					FirstConfig:  first,
					SecondConfig: nc.Name,
				}
			}
			claimedTokens[token] = nc.Name
		}
	}

	return nil
}
