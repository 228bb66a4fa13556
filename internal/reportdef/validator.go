package reportdef

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"salescope/internal/report"
)

// Validator handles report definition validation.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new validator with the given schema file.
func NewValidator(schemaPath string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateDirectory loads and validates all report definition files in a
// directory.
func (v *Validator) ValidateDirectory(dirPath string) []ValidationError {
	defs, loadErrors := LoadFromDirectory(dirPath)

	var allErrors []ValidationError
	allErrors = append(allErrors, loadErrors...)

	if len(defs) == 0 {
		return allErrors
	}

	for _, def := range defs {
		allErrors = append(allErrors, v.validateSchema(def.File, def.Report)...)
	}

	allErrors = append(allErrors, validateExtraRules(defs)...)

	return allErrors
}

// validateSchema validates a single definition against the JSON schema.
func (v *Validator) validateSchema(file string, def *Report) []ValidationError {
	var errors []ValidationError

	// Round-trip through YAML to get plain maps for schema validation.
	yamlBytes, err := yaml.Marshal(def)
	if err != nil {
		errors = append(errors, ValidationError{
			File:    file,
			Message: fmt.Sprintf("failed to marshal definition: %v", err),
		})
		return errors
	}

	var jsonData interface{}
	if err := yaml.Unmarshal(yamlBytes, &jsonData); err != nil {
		errors = append(errors, ValidationError{
			File:    file,
			Message: fmt.Sprintf("failed to convert to JSON: %v", err),
		})
		return errors
	}

	if err := v.schema.Validate(jsonData); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			errors = append(errors, extractSchemaErrors(file, validationErr)...)
		} else {
			errors = append(errors, ValidationError{
				File:    file,
				Message: err.Error(),
			})
		}
	}

	return errors
}

// extractSchemaErrors converts JSON schema validation errors to ValidationErrors
func extractSchemaErrors(file string, err *jsonschema.ValidationError) []ValidationError {
	var errors []ValidationError

	path := strings.Join(err.InstanceLocation, ".")
	if path == "" {
		path = "(root)"
	}

	errors = append(errors, ValidationError{
		File:    file,
		Path:    path,
		Message: err.Error(),
	})

	for _, cause := range err.Causes {
		errors = append(errors, extractSchemaErrors(file, cause)...)
	}

	return errors
}

// validateExtraRules applies rules beyond what the JSON schema can express:
// unique IDs, known view names, parseable intervals and reference dates.
func validateExtraRules(defs []ReportWithFile) []ValidationError {
	var errors []ValidationError

	idSeen := make(map[string]string)
	for _, def := range defs {
		id := def.Report.Metadata.ID
		if prevFile, exists := idSeen[id]; exists {
			errors = append(errors, ValidationError{
				File:    def.File,
				Path:    "metadata.id",
				Message: fmt.Sprintf("duplicate ID %q (also in %s)", id, filepath.Base(prevFile)),
			})
		} else {
			idSeen[id] = def.File
		}

		if !report.KnownView(report.View(def.Report.Spec.View)) {
			errors = append(errors, ValidationError{
				File:    def.File,
				Path:    "spec.view",
				Message: fmt.Sprintf("unknown view %q", def.Report.Spec.View),
			})
		}

		if _, err := ParseInterval(def.Report.Spec.RefreshInterval); err != nil {
			errors = append(errors, ValidationError{
				File:    def.File,
				Path:    "spec.refreshInterval",
				Message: fmt.Sprintf("invalid interval: %v", err),
			})
		}

		if def.Report.Spec.ReferenceDate != "" {
			if _, err := def.Report.ReferenceDate(time.Time{}); err != nil {
				errors = append(errors, ValidationError{
					File:    def.File,
					Path:    "spec.referenceDate",
					Message: err.Error(),
				})
			}
		}
	}

	return errors
}
