package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "movieportal/pkg/errors"
)

// MaxBodyBytes bounds request bodies accepted by the API
const MaxBodyBytes = 1 << 20

// RespondJSON sends data as the JSON body
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// ExtractRequestID extracts the request ID from the request
func ExtractRequestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Amzn-Trace-Id"); id != "" {
		return id
	}
	return ""
}

// ParseJSONBody decodes the request body into v. Unknown fields are ignored
// and an empty body decodes as an empty object.
func ParseJSONBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
