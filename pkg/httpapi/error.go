package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iota-uz/iota-projects/pkg/composables"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteAPIError writes an error envelope carrying the request id of r.
func WriteAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	var meta map[string]string
	if id := composables.UseRequestID(ctx); id != "" {
		meta = map[string]string{"request_id": id}
	}
	if err := WriteError(w, status, code, message, meta); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to write error response")
	}
}
