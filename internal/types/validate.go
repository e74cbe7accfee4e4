package types

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	idCharsPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	templateIDPattern = regexp.MustCompile(`^T_[A-Z_]+_V\d+$`)

	validatorOnce sync.Once
	validate      *validator.Validate
)

// requestValidator returns the shared validator for API request types.
// Field names in validation errors use the json tag so they match the wire
// contract rather than the Go struct fields.
func requestValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("id_chars", func(fl validator.FieldLevel) bool {
			return idCharsPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("template_id", func(fl validator.FieldLevel) bool {
			return templateIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}
