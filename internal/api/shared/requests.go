package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance.
var Validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are left to
// the per-operation rules (PATCH rejects them explicitly).
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ViolationList translates validator errors into user-facing violation
// strings, one per failed field, using names to map Go field names to
// their wire spelling.
func ViolationList(err error, names map[string]string) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"invalid request data"}
	}

	violations := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := names[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		violations = append(violations, fmt.Sprintf("%s: %s", name, tagMessage(fe)))
	}
	return violations
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "invalid value"
	}
}
