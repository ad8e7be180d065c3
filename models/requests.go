package models

import "encoding/json"

// NamedConfigRequest is the JSON body used to create or update a named
// configuration through the admin API. Name is taken from the URL path on
// updates and may be omitted there.
type NamedConfigRequest struct {
	Name     string          `json:"name,omitempty"`
	Data     json.RawMessage `json:"data"`
	Versions []string        `json:"versions"`
}
