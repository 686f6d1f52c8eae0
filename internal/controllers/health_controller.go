package controllers

import (
	"fmt"
	"net/http"
	"skinwatch/internal/monitor"
	"skinwatch/internal/providers"
	"time"
)

type HealthController struct {
	service   monitor.MonitorServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Runs          int64   `json:"runs"`
	LastOutcome   string  `json:"last_outcome"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		providers.WriteJsonError(w, http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	snapshot := hc.service.Status()
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Runs:          snapshot.Runs,
		LastOutcome:   string(snapshot.LastOutcome),
	}

	providers.WriteJson(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service monitor.MonitorServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
