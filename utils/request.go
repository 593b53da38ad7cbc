package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"recipebox/apperr"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads the request body into dst. Malformed or oversized
// bodies are reported as validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Bad request.", decodeProblem(err))
	}
	return nil
}

// decodeProblem describes a decoding failure without leaking Go type names.
func decodeProblem(err error) any {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "request body must be " + jsonKind(typeErr.Type)
		}
		return map[string]string{typeErr.Field: "must be " + jsonKind(typeErr.Type)}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is not valid JSON"
	case errors.As(err, &tooLarge):
		return "request body is too large"
	default:
		return "request body could not be read"
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
