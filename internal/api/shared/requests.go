package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBody caps how much of a request body the decoder reads.
// Board, column, and task payloads are tiny; anything near this limit
// is not a legitimate client.
const maxRequestBody = 1 << 20

var validate = validator.New()

// DecodeJSON decodes the request body into v, refusing bodies larger
// than maxRequestBody.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody)).Decode(v)
}

// ValidateRequest checks a decoded request. Types carrying their own
// Validate method use it; everything else goes through the struct
// tags.
func ValidateRequest(v any) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return validate.Struct(v)
}
