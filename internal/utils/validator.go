package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MissingRequired reports whether any required field of the request
// body is absent. Format-level tags (len, numeric) are deliberately not
// judged here: a malformed code can never match a stored one, so the
// store lookup decides its fate and the right error class.
func MissingRequired(s interface{}) bool {
	err := validate.Struct(s)
	if err == nil {
		return false
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Tag() == "required" {
				return true
			}
		}
		return false
	}
	return true
}
