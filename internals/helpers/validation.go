// file: internals/helpers/validation.go
package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorMap flattens validator.v10 field errors into the
// field → rule-messages map carried by JsonValidationError. A non-
// validator error collapses into a single "request" entry.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	if err == nil {
		return out
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["request"] = []string{err.Error()}
		return out
	}

	for _, fe := range ve {
		field := fe.Field()
		msg := "failed on the '" + fe.Tag() + "' rule"
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
