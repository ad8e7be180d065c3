package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/models"
)

var (
	ErrApplicationAlreadyExists = errors.New("application already exists")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrNamedConfigAlreadyExists = errors.New("named configuration already exists")
	ErrNamedConfigNotFound      = errors.New("named configuration not found")

	ErrEmptyApplicationID = errors.New("application ID is empty")
	ErrInvalidVersion     = errors.New("invalid version")
)

// ValidationError reports that an aggregate failed validation. It carries
// every issue found in the failing area, not just the first, so a caller can
// report all problems in one round trip. Context labels the area that failed,
// e.g. "schema", "default configuration", `named configuration "production"`.
type ValidationError struct {
	Context string
	Issues  []models.ValidationIssue
}

func (e *ValidationError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("validation failed: %d issue(s)", len(e.Issues))
	}
	return fmt.Sprintf("validation failed in %s: %d issue(s)", e.Context, len(e.Issues))
}

// VersionConflictError reports that two named configurations list the
// identical literal version token, which would make resolution ambiguous on
// an exact match.
type VersionConflictError struct {
	Version      string
	FirstConfig  string
	SecondConfig string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version %q is claimed by both %q and %q", e.Version, e.FirstConfig, e.SecondConfig)
}
