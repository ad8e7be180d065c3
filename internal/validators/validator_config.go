package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-config-keeper/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// metaSchemaURL identifies the JSON-Schema 2020-12 meta-schema. The document
// itself ships embedded in the jsonschema package, so compiling it never
// touches the network.
const metaSchemaURL = "https://json-schema.org/draft/2020-12/schema"

// schemaResourceURL is the synthetic URL under which application schemas are
// registered with the compiler before compilation.
const schemaResourceURL = "inline://application/schema.json"

// configValidator is the default implementation of [ConfigValidator],
// backed by santhosh-tekuri/jsonschema for schema work and Masterminds
// semver for version syntax.
type configValidator struct {
	meta *jsonschema.Schema
}

// NewConfigValidator constructs a [ConfigValidator] with the 2020-12
// meta-schema pre-compiled. The meta-schema is embedded in the library, so
// the only conceivable failure is a packaging defect.
func NewConfigValidator() (ConfigValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	meta, err := compiler.Compile(metaSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile json-schema meta-schema: %w", err)
	}

	return &configValidator{meta: meta}, nil
}

// ValidateSchema validates schema against the 2020-12 meta-schema and
// returns every violation found. A document that is not even syntactically
// valid JSON yields a single root issue.
func (v *configValidator) ValidateSchema(_ context.Context, schema json.RawMessage) []models.ValidationIssue {
	doc, issue := decodeDocument(schema, "schema")
	if issue != nil {
		return []models.ValidationIssue{*issue}
	}

	if err := v.meta.Validate(doc); err != nil {
		return flattenValidationError(err, doc)
	}

	return nil
}

// ValidateData compiles schema and validates data against it. The compile
// step is repeated per call: application schemas are small and mutate with
// the aggregate, so there is nothing worth caching across calls.
func (v *configValidator) ValidateData(_ context.Context, data, schema json.RawMessage) []models.ValidationIssue {
	compiled, issue := compileSchema(schema)
	if issue != nil {
		return []models.ValidationIssue{*issue}
	}

	doc, issue := decodeDocument(data, "data")
	if issue != nil {
		return []models.ValidationIssue{*issue}
	}

	if err := compiled.Validate(doc); err != nil {
		return flattenValidationError(err, doc)
	}

	return nil
}

// ValidateVersions checks each entry for semantic-version syntax validity.
func (v *configValidator) ValidateVersions(_ context.Context, versions []string) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for i, token := range versions {
		if IsVersionToken(token) {
			continue
		}

		issues = append(issues, models.ValidationIssue{
			Field:   fmt.Sprintf("versions[%d]", i),
			Message: "not a valid semantic version or semver range",
			Value:   token,
		})
	}

	return issues
}

// compileSchema registers schema under a synthetic URL and compiles it.
// Any failure (syntax, meta-schema violation, unresolvable reference)
// collapses into a single root issue, because an uncompilable schema matches
// nothing usable.
func compileSchema(schema json.RawMessage) (*jsonschema.Schema, *models.ValidationIssue) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaResourceURL, bytes.NewReader(schema)); err != nil {
		return nil, &models.ValidationIssue{
			Field:   models.IssueFieldRoot,
			Message: fmt.Sprintf("schema is not usable: %v", err),
		}
	}

	compiled, err := compiler.Compile(schemaResourceURL)
	if err != nil {
		return nil, &models.ValidationIssue{
			Field:   models.IssueFieldRoot,
			Message: fmt.Sprintf("schema is not usable: %v", err),
		}
	}

	return compiled, nil
}

// decodeDocument unmarshals raw into the generic representation the
// jsonschema library validates against. label names the document in the
// issue message ("schema", "data").
func decodeDocument(raw json.RawMessage, label string) (any, *models.ValidationIssue) {
	if len(raw) == 0 {
		return nil, &models.ValidationIssue{
			Field:   models.IssueFieldRoot,
			Message: label + " document is empty",
		}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &models.ValidationIssue{
			Field:   models.IssueFieldRoot,
			Message: fmt.Sprintf("%s is not valid JSON: %v", label, err),
		}
	}

	return doc, nil
}

// flattenValidationError turns the cause tree of a jsonschema validation
// error into a flat issue list. Only leaf causes are reported: intermediate
// nodes merely restate that a subschema failed. Duplicate (field, message)
// pairs, typical for anyOf/oneOf branches, are collapsed.
func flattenValidationError(err error, instance any) []models.ValidationIssue {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []models.ValidationIssue{{
			Field:   models.IssueFieldRoot,
			Message: err.Error(),
		}}
	}

	var issues []models.ValidationIssue
	seen := make(map[string]struct{})
	collectLeafCauses(ve, instance, seen, &issues)
	return issues
}

func collectLeafCauses(ve *jsonschema.ValidationError, instance any, seen map[string]struct{}, issues *[]models.ValidationIssue) {
	if len(ve.Causes) == 0 {
		field := pointerToField(ve.InstanceLocation)

		key := field + "\x00" + ve.Message
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		issue := models.ValidationIssue{
			Field:   field,
			Message: ve.Message,
		}
		if value, ok := valueAtPointer(instance, ve.InstanceLocation); ok {
			issue.Value = value
		}

		*issues = append(*issues, issue)
		return
	}

	for _, cause := range ve.Causes {
		collectLeafCauses(cause, instance, seen, issues)
	}
}

// pointerToField converts a JSON pointer into the dotted field locator used
// in issues: "/appearance" becomes "appearance", "/items/0/name" becomes
// "items.0.name". The empty pointer names the whole document.
func pointerToField(pointer string) string {
	if pointer == "" {
		return models.IssueFieldRoot
	}

	tokens := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, token := range tokens {
		token = strings.ReplaceAll(token, "~1", "/")
		tokens[i] = strings.ReplaceAll(token, "~0", "~")
	}

	return strings.Join(tokens, ".")
}

// valueAtPointer resolves a JSON pointer ("/a/0/b") against a generic
// decoded document. The empty pointer resolves to the document itself.
func valueAtPointer(doc any, pointer string) (any, bool) {
	if pointer == "" {
		return doc, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}

	current := doc
	for _, token := range strings.Split(pointer[1:], "/") {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		switch node := current.(type) {
		case map[string]any:
			child, ok := node[token]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}

	return current, true
}
