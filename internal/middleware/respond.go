package middleware

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]string{"message": message})
	if err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
