package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ApplicationSchemaJSON describes the JSON body of an application. Presence
// and content are left to the rule set; the schema only pins the shape.
const ApplicationSchemaJSON = `{
	"type": "object",
	"properties": {
		"fullName":  {"type": "string"},
		"email":     {"type": "string"},
		"studentID": {"type": "string"}
	},
	"additionalProperties": false
}`

// CheckRequestSchemaJSON describes the body of a live validation request.
const CheckRequestSchemaJSON = `{
	"type": "object",
	"properties": {
		"values": ` + ApplicationSchemaJSON + `,
		"touched": {
			"type": "array",
			"items": {"type": "string", "enum": ["fullName", "email", "studentID"]},
			"uniqueItems": true
		}
	},
	"required": ["values"],
	"additionalProperties": false
}`

// ValidationResult is the outcome of a schema check.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema wraps a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompileSchema is CompileSchema for package-level schemas.
func MustCompileSchema(schemaJSON string) *Schema {
	s, err := CompileSchema(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	ApplicationSchema  = MustCompileSchema(ApplicationSchemaJSON)
	CheckRequestSchema = MustCompileSchema(CheckRequestSchemaJSON)
)

// ValidateJSON checks a raw JSON document. A non-nil error means the document
// could not be parsed at all.
func (s *Schema) ValidateJSON(doc []byte) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

// required and additionalProperties errors are reported on the parent;
// name the property instead
func fieldOf(desc gojsonschema.ResultError) string {
	field := desc.Field()
	switch desc.Type() {
	case "required", "additional_property_not_allowed":
	default:
		return field
	}
	prop, ok := desc.Details()["property"].(string)
	switch {
	case !ok:
		return field
	case field == "(root)":
		return prop
	case field == prop || strings.HasSuffix(field, "."+prop):
		return field
	default:
		return field + "." + prop
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
