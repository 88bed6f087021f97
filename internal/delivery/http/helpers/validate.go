package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps request bodies read by DecodeAndValidate.
const MaxBodyBytes = 64 << 10

// ErrValidation is wrapped by the error DecodeAndValidate returns for a body that
// decoded but failed validation.
var ErrValidation = errors.New("validation failed")

// errNullBody is returned for a body that is the JSON literal null.
var errNullBody = errors.New("request body is null")

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest implements
// Validator, runs Validate(). The body must hold exactly one JSON value that is not
// null. An unparseable body gets a 500 with decodeMessage; a validation failure gets
// a 400 with the joined validation messages.
// The returned error is nil when the caller may proceed.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any, decodeMessage string) error {
	if err := decodeSingle(http.MaxBytesReader(w, r.Body, MaxBodyBytes), dest); err != nil {
		WriteJSONError(w, http.StatusInternalServerError, decodeMessage)
		return fmt.Errorf("decode request body: %w", err)
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			msg := strings.Join(errs, "; ")
			WriteJSONError(w, http.StatusBadRequest, msg)
			return fmt.Errorf("%w: %s", ErrValidation, msg)
		}
	}
	return nil
}

func decodeSingle(body io.Reader, dest any) error {
	dec := json.NewDecoder(body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON value")
		}
		return err
	}
	if bytes.Equal(raw, []byte("null")) {
		return errNullBody
	}
	return json.Unmarshal(raw, dest)
}
