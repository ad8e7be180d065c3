package models

import "encoding/json"

// ConfigResponse is the result of resolving a configuration request.
type ConfigResponse struct {
	// Data is the resolved configuration payload — either a named
	// configuration's data or the application's default config.
	Data json.RawMessage `json:"data"`

	// ConfigSource is the name of the named configuration that matched,
	// or [ConfigSourceDefault] when the default configuration was used.
	ConfigSource string `json:"configSource"`
}

// ErrorResponse is the JSON body returned by the HTTP layer for every
// failed request.
type ErrorResponse struct {
	// Error is a short human-readable description of the failure.
	Error string `json:"error"`

	// Issues carries the full validation report when the failure was a
	// validation error; empty otherwise.
	Issues []ValidationIssue `json:"issues,omitempty"`
}
