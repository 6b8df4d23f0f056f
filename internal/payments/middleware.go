package payments

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Endpoint wraps a proxy handler with the browser-facing contract: CORS
// headers on every response, OPTIONS preflight, POST only, and a catch-all
// that converts panics into a generic failure without echoing internals.
func Endpoint(h http.HandlerFunc, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		case http.MethodPost:
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
			return
		}

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in payment handler", "panic", rec, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "service unavailable", logger)
			}
		}()

		h(w, r)
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "failed", "error": message}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
