package registration

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// Response is the JSON envelope of every endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps field names to
// messages for validation failures.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// FieldResult is the payload of POST /fields/{name}.
type FieldResult struct {
	Field     string `json:"field"`
	Value     string `json:"value"`
	Valid     bool   `json:"valid"`
	ShowError bool   `json:"show_error"`
}

// SubmitResult is the payload of an accepted submission.
type SubmitResult struct {
	Valid bool `json:"valid"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WarnContext(r.Context(), "failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, code, message string) {
	writeJSON(w, r, log, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}
