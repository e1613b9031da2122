package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package.
// Types that implement their own Validate method are validated through it.
func ValidateRequest(v any) error {
	if validating, ok := v.(interface{ Validate() error }); ok {
		return validating.Validate()
	}
	return validate.Struct(v)
}
