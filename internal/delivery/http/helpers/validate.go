package helpers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// FormBinder is implemented by request DTOs that can also be submitted as
// an HTML form.
type FormBinder interface {
	BindForm(form url.Values) error
}

// maxBodyBytes caps request bodies for both JSON and form submissions.
const maxBodyBytes = 1 << 20

// IsFormPost reports whether r carries a urlencoded or multipart form body.
func IsFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// DecodeAndValidate decodes the request body into dest and, if dest
// implements Validator, runs Validate(). JSON bodies are decoded with
// DisallowUnknownFields; form bodies go through FormBinder. On decode or
// validation failure it writes a 400 JSON error and returns false; otherwise
// returns true. Callers should return immediately when it returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := decode(r, dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

func decode(r *http.Request, dest any) error {
	if IsFormPost(r) {
		binder, ok := dest.(FormBinder)
		if !ok {
			return fmt.Errorf("form submissions are not accepted here")
		}
		if err := r.ParseForm(); err != nil {
			return err
		}
		return binder.BindForm(r.PostForm)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// PathID parses the named path value as a positive int64 identifier. On
// failure it writes a 400 JSON error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// FormInt reads an optional integer form field. An empty field yields 0.
func FormInt(form url.Values, key string) (int, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return n, nil
}
