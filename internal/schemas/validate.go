// Package schemas provides JSON Schema validation for the canonical Stage-0
// payload. The schema is embedded at compile time so validation never
// depends on the working directory.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed stage0.schema.json
var stage0Schema string

// ValidationError represents a schema validation failure with field paths.
// Every violated constraint is reported; validation is not fail-fast.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or compiling the schema itself.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load stage0 schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load stage0 schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateStage0 validates a canonical Stage-0 payload (a decoded JSON
// document) against the embedded schema. Returns nil when valid, a
// *ValidationError listing every violation when invalid, or a
// *SchemaLoadError when the schema itself cannot be compiled.
func ValidateStage0(doc any) error {
	schemaLoader := gojsonschema.NewStringLoader(stage0Schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
