package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used for request DTOs.
var Validate = validator.New()

// DecodeJSON decodes the request body into the given struct. Unknown
// fields are tolerated; malformed JSON is not.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
