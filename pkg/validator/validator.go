package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	labelRegex   *regexp.Regexp
	specKeyRegex *regexp.Regexp
	validate     *validator.Validate
)

// Category labels may not contain the value delimiter, the histogram
// separator or the wildcard, and may not start or end with whitespace.
func ValidateLabel(label string) bool {
	return labelRegex.MatchString(label)
}

// Spec keys name specs in manifests and tables
func ValidateSpecKey(key string) bool {
	return specKeyRegex.MatchString(key)
}

// Validates a struct against its `validate` tags. The returned error lists
// every failing field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		messages[i] = formatFieldError(fieldErr)
	}
	return errors.New(strings.Join(messages, "; "))
}

func formatFieldError(err validator.FieldError) string {
	field := strings.ToLower(err.Field())
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got '%v'", field, err.Param(), err.Value())
	case "unique":
		return fmt.Sprintf("%s must be unique", field)
	case "label":
		return fmt.Sprintf("%s has invalid label '%v'", field, err.Value())
	}
	if err.Param() != "" {
		return fmt.Sprintf("%s failed '%s=%s' rule, got '%v'", field, err.Tag(), err.Param(), err.Value())
	}
	return fmt.Sprintf("%s failed '%s' rule, got '%v'", field, err.Tag(), err.Value())
}

func validateLabelField(fl validator.FieldLevel) bool {
	return ValidateLabel(fl.Field().String())
}

func init() {
	labelRegex = regexp.MustCompile(`^[^|=*\s](?:[^|=*\n]*[^|=*\s])?$`)
	specKeyRegex = regexp.MustCompile(`^[[:alpha:]][\w.\-]*$`)

	validate = validator.New()
	_ = validate.RegisterValidation("label", validateLabelField)
}
