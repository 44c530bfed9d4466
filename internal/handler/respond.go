package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/snapnest/snapnest/internal/apperr"
)

const maxJSONBody = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError answers with the status and message of an *apperr.Error.
// Anything else is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		slog.Error("unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := e.Status()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "kind", e.Kind, "method", r.Method, "path", r.URL.Path)
	}
	writeMessage(w, status, e.Message)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst zeroed so
// the request's validation rules report the missing fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperr.Validation("Request body too large")
	}
	return apperr.Wrap(apperr.KindValidation, "Invalid request body", err)
}

// NotFound answers unmatched routes in the API's JSON shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}
