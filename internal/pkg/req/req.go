/*
Package req provides helpers for decoding HTTP request bodies into handler input structs.

Both JSON bodies and URL-encoded forms are accepted; form values are mapped onto the
destination through its json tags so one input struct serves either encoding.
*/
package req

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"roomchat/internal/pkg/errs"
)

// MaxBodySize limits the size of accepted request bodies (64 KB).
const MaxBodySize int64 = 64 << 10

// Bind decodes the request body into dst according to its Content-Type.
func Bind(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return BindJSON(r, dst)
	case "application/x-www-form-urlencoded":
		return BindForm(r, dst)
	default:
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}
}

// BindJSON decodes a single JSON document from the request body into dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if isTooLarge(err) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// BindForm parses a URL-encoded form and copies the first value of each field into dst.
// Unknown form fields are ignored.
func BindForm(r *http.Request, dst any) *errs.CustomError {
	if err := r.ParseForm(); err != nil {
		if isTooLarge(err) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrFormParseFailed)
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return errs.NewError(errs.ErrFormParseFailed)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
