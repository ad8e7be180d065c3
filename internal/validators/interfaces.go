// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators implements the validation engine of the configuration
// registry: JSON-Schema meta-validation of application schemas, validation
// of configuration payloads against those schemas, and syntax checks of
// semantic-version tokens.
//
// Every operation returns a collection of [models.ValidationIssue] rather
// than failing on the first violation, so that callers can report every
// problem in a single round trip. Validation is pure: it never mutates any
// store and never panics on malformed input — malformed input simply
// produces issues.
package validators

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-config-keeper/models"
)

// ConfigValidator validates schema documents, configuration payloads, and
// version lists. An empty result means the input is valid.
type ConfigValidator interface {

	// ValidateSchema checks that schema is itself a structurally valid
	// JSON-Schema document by validating it against the JSON-Schema 2020-12
	// meta-schema.
	ValidateSchema(ctx context.Context, schema json.RawMessage) []models.ValidationIssue

	// ValidateData compiles schema and validates data against it, collecting
	// every violation. A schema that does not compile matches nothing usable;
	// callers are expected to run ValidateSchema first.
	ValidateData(ctx context.Context, data, schema json.RawMessage) []models.ValidationIssue

	// ValidateVersions checks each entry for semantic-version syntax
	// validity: either an exact version or a valid range expression.
	// Issues reference entries by positional field name (e.g. "versions[2]").
	ValidateVersions(ctx context.Context, versions []string) []models.ValidationIssue
}
