package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency the service cannot work without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandlers serves readiness checks.
type HealthHandlers struct {
	// Checks are pinged by name; a nil map reports healthy.
	Checks map[string]Pinger
	Logger *slog.Logger
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports 200 when every check answers and 503 otherwise.
// GET|HEAD /healthz.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	report := healthReport{Status: "ok"}
	status := http.StatusOK
	for name, check := range h.Checks {
		if err := check.Ping(ctx); err != nil {
			if report.Checks == nil {
				report.Checks = make(map[string]string)
			}
			report.Checks[name] = err.Error()
			report.Status = "unavailable"
			status = http.StatusServiceUnavailable
			if h.Logger != nil {
				h.Logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
			}
		}
	}

	body, err := json.Marshal(report)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}
