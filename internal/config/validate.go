package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a configuration problem located in a file, either at a
// line/column or on a named field.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// validate reports fields by their koanf key so messages match the file.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}()

// ValidateYAMLSyntax checks that the file at filePath parses as YAML. A
// missing or blank file is valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeError *yaml.TypeError
	if errors.As(err, &typeError) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeError.Errors, "; ")}
	}
	line, column, msg := splitYAMLError(err.Error())
	return &ValidationError{FilePath: filePath, Line: line, Column: column, Message: msg}
}

// ValidateConfigValues checks cfg against its validate tags. Every failing
// field is reported; the result unwraps to one *ValidationError per field.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			FilePath: filePath,
			Field:    fieldPath(fe),
			Message:  describeFieldError(fe),
		})
	}
	return errors.Join(errs...)
}

// fieldPath turns "Configuration.deploy.environment" into "deploy.environment".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// splitYAMLError parses yaml.v3 messages of the form
// "yaml: line 5: column 3: did not find expected key". The column defaults
// to 1 when yaml.v3 reports only a line.
func splitYAMLError(msg string) (line, column int, text string) {
	rest, ok := strings.CutPrefix(msg, "yaml: ")
	if !ok {
		return 0, 0, msg
	}
	if n, _ := fmt.Sscanf(rest, "line %d: column %d:", &line, &column); n == 2 {
		return line, column, afterNth(rest, ": ", 2)
	}
	if n, _ := fmt.Sscanf(rest, "line %d:", &line); n == 1 {
		return line, 1, afterNth(rest, ": ", 1)
	}
	return 0, 0, rest
}

func afterNth(s, sep string, n int) string {
	for range n {
		_, after, ok := strings.Cut(s, sep)
		if !ok {
			return s
		}
		s = after
	}
	return s
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be an absolute URL"
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
