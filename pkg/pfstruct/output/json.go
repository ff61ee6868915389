// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// ErrorResponse is the body returned when extraction fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToJSON serializes a result, indented when pretty is set.
func ToJSON(result *models.Result, pretty bool) ([]byte, error) {
	return marshal(result, pretty)
}

// ErrorToJSON serializes err as an error response.
func ErrorToJSON(err error, pretty bool) ([]byte, error) {
	return marshal(ErrorResponse{Error: err.Error()}, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
