package models

// IssueFieldRoot is the Field value used when a validation issue has no
// more precise locator than the document itself.
const IssueFieldRoot = "root"

// ValidationIssue describes one way a document fails to satisfy a schema
// or syntax rule. Validators return every issue they find in a single
// pass so that callers (most importantly an editing UI) can report all
// problems in one round trip.
type ValidationIssue struct {
	// Field is a JSON-pointer-like locator of the offending part of the
	// document ("/properties/appearance", "versions[2]"), or "root" when
	// the issue applies to the document as a whole.
	Field string `json:"field"`

	// Message is a human-readable description of the violation.
	Message string `json:"message"`

	// Value is the offending value, when it could be extracted.
	Value any `json:"value,omitempty"`
}
