package handlers

import (
	"net/http"

	"clipgen/internal/httpkit"
)

// Root returns the service descriptor.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	httpkit.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "online",
		"service": "Image to Video API",
		"endpoints": map[string]string{
			"generate": "POST /generate-videos",
			"status":   "GET /status/{job_id}",
			"jobs":     "GET /jobs",
			"health":   "GET /health",
		},
	})
}

// Health reports liveness and which storage backend is active. With
// ?deep=true it also probes the wired dependencies and answers 503 when any
// of them is down.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "healthy",
		"storage": h.storage.Provider(),
	}

	if r.URL.Query().Get("deep") != "true" {
		httpkit.WriteJSON(w, http.StatusOK, body)
		return
	}

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			deps[name] = "unhealthy: " + err.Error()
			body["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "healthy"
	}
	body["dependencies"] = deps

	httpkit.WriteJSON(w, status, body)
}
