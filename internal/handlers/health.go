package handlers

import (
	"net/http"
	"runtime"

	"showroom-gallery/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response.
type HealthResponse struct {
	Status           string `json:"status"`
	Ready            bool   `json:"ready"`
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	Loading          bool   `json:"loading"`
	LastLoaded       string `json:"lastLoaded,omitempty"`
	InitialLoadError string `json:"initialLoadError,omitempty"`

	Source    string `json:"source"`
	Degraded  bool   `json:"degraded"`
	ItemCount int    `json:"itemCount"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. The service is
// unhealthy only before the initial manifest load attempt has completed; an
// empty catalog afterwards is a valid degenerate state and reports degraded,
// not failing.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	healthStatus := h.reloader.GetHealthStatus()

	response := HealthResponse{
		Ready:        healthStatus.Ready,
		Version:      startup.Version,
		Uptime:       healthStatus.Uptime,
		Loading:      healthStatus.Loading,
		Source:       string(healthStatus.Source),
		Degraded:     healthStatus.Degraded,
		ItemCount:    healthStatus.ItemCount,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	switch {
	case !healthStatus.Ready:
		response.Status = statusStarting
	case healthStatus.Degraded:
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}

	if !healthStatus.LastLoaded.IsZero() {
		response.LastLoaded = healthStatus.LastLoaded.Format("2006-01-02T15:04:05Z07:00")
	}
	if healthStatus.InitialLoadError != "" {
		response.InitialLoadError = healthStatus.InitialLoadError
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthStatus.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	writeJSON(w, response)
}

// LivenessCheck always returns 200 while the process is running.
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "alive"})
}

// ReadinessCheck returns 200 once the initial manifest load attempt has
// completed, regardless of how many items it produced.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	healthStatus := h.reloader.GetHealthStatus()

	w.Header().Set("Content-Type", "application/json")
	if !healthStatus.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, map[string]string{"status": "ready"})
}
