// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ConfigSourceDefault is the ConfigSource value reported when a config
// lookup falls back to the application's default configuration instead of
// matching a named configuration.
const ConfigSourceDefault = "default"

// Application is the root aggregate of the configuration registry.
//
// Every registered application owns a JSON-Schema document, a default
// configuration payload, and zero or more named configurations bound to
// semantic-version ranges. The registry always reads and writes the
// aggregate as a whole; there are no partial-document operations at the
// storage layer.
type Application struct {
	// ApplicationID uniquely identifies the application across the registry.
	// Non-empty after trimming whitespace; immutable after creation.
	ApplicationID string `json:"applicationId"`

	// Archived excludes the application from config resolution while keeping
	// it visible to admin reads. Flipping this flag does not re-run schema
	// or data validation.
	Archived bool `json:"archived"`

	// Schema is the JSON-Schema document governing validation of this
	// application's configuration payloads. An empty object accepts anything.
	Schema json.RawMessage `json:"schema"`

	// DefaultConfig is the payload returned when no named configuration
	// matches a requested version. It must validate against Schema.
	DefaultConfig json.RawMessage `json:"defaultConfig"`

	// NamedConfigs holds the application's named configurations in their
	// stored order. Order matters: config resolution returns the first
	// configuration whose version set matches the requested version.
	// Names are unique within the application.
	NamedConfigs []NamedConfig `json:"namedConfigs"`

	// LastUpdated is refreshed on every successful mutation of the aggregate.
	LastUpdated time.Time `json:"lastUpdated"`
}

// NamedConfig is a configuration override owned exclusively by its
// Application. It has no identity outside the owning aggregate.
type NamedConfig struct {
	// Name identifies the configuration within its application
	// (e.g. "production", "staging").
	Name string `json:"name"`

	// Data is the configuration payload. It must validate against the
	// owning application's Schema.
	Data json.RawMessage `json:"data"`

	// Versions is the ordered list of semantic-version tokens this
	// configuration is bound to. Each entry is either an exact version
	// ("1.2.3") or a semver range expression ("^1.0.0", ">=2.0.0 <3.0.0").
	// Order is preserved for display only; it carries no resolution meaning.
	Versions []string `json:"versions"`
}

// ApplicationUpdate describes a partial update of an Application aggregate.
// Zero-valued fields are left untouched during the merge; non-empty fields
// replace the stored value wholesale. ApplicationID and Archived cannot be
// changed through an update: the former is immutable, the latter is flipped
// only via the dedicated archive/unarchive operations.
type ApplicationUpdate struct {
	Schema        json.RawMessage `json:"schema,omitempty"`
	DefaultConfig json.RawMessage `json:"defaultConfig,omitempty"`
	NamedConfigs  []NamedConfig   `json:"namedConfigs,omitempty"`
}

// NamedConfig returns the named configuration with the given name and its
// position in the stored order, or nil and -1 when no such configuration
// exists.
func (a *Application) NamedConfig(name string) (*NamedConfig, int) {
	for i := range a.NamedConfigs {
		if a.NamedConfigs[i].Name == name {
			return &a.NamedConfigs[i], i
		}
	}
	return nil, -1
}

// Clone returns a deep copy of the aggregate. Storage backends hand out
// clones so that callers can never alias the stored document.
func (a Application) Clone() Application {
	clone := a
	clone.Schema = cloneRaw(a.Schema)
	clone.DefaultConfig = cloneRaw(a.DefaultConfig)

	if a.NamedConfigs != nil {
		clone.NamedConfigs = make([]NamedConfig, len(a.NamedConfigs))
		for i, nc := range a.NamedConfigs {
			clone.NamedConfigs[i] = NamedConfig{
				Name: nc.Name,
				Data: cloneRaw(nc.Data),
			}
			if nc.Versions != nil {
				clone.NamedConfigs[i].Versions = append([]string(nil), nc.Versions...)
			}
		}
	}

	return clone
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
