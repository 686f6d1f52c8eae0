package controllers

import (
	"net/http"
	"skinwatch/internal/monitor"
	"skinwatch/internal/providers"
	schedulerInterfaces "skinwatch/internal/scheduler/interfaces"
	"skinwatch/internal/storage"
	"time"
)

type MonitorController struct {
	logger    providers.Logger
	service   monitor.MonitorServiceInterface
	session   storage.SessionProviderInterface
	markers   storage.MarkerStoreInterface
	scheduler schedulerInterfaces.SchedulerInterface
}

func NewMonitorController(logger providers.Logger, service monitor.MonitorServiceInterface, session storage.SessionProviderInterface, markers storage.MarkerStoreInterface, scheduler schedulerInterfaces.SchedulerInterface) *MonitorController {
	return &MonitorController{
		logger:    logger,
		service:   service,
		session:   session,
		markers:   markers,
		scheduler: scheduler,
	}
}

type statusResponse struct {
	Authenticated bool                   `json:"authenticated"`
	Tasks         map[string]string      `json:"tasks"`
	Monitor       monitor.StatusSnapshot `json:"monitor"`
}

type runResponse struct {
	Outcome string `json:"outcome"`
}

// Status never exposes the token or the alert marker, only whether a session exists.
func (mc *MonitorController) Status(w http.ResponseWriter, r *http.Request) {
	_, authenticated, err := mc.session.Token()
	if err != nil {
		mc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Unable to read session: %s", err)
		providers.WriteJsonError(w, http.StatusInternalServerError)
		return
	}

	tasks := make(map[string]string)
	for name, interval := range mc.scheduler.Registered() {
		tasks[name] = interval.String()
	}

	providers.WriteJson(w, http.StatusOK, statusResponse{
		Authenticated: authenticated,
		Tasks:         tasks,
		Monitor:       mc.service.Status(),
	})
}

// Run executes one monitor run synchronously; it is serialized with scheduled
// runs, so it may wait for one in flight. The server write timeout is lifted
// for this request so the outcome always reaches the caller.
func (mc *MonitorController) Run(w http.ResponseWriter, r *http.Request) {
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		mc.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Write deadline not adjustable: %s", err)
	}
	start := time.Now()
	outcome := mc.service.Run(r.Context())
	mc.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Manual run: %s in %s", outcome, time.Since(start))
	providers.WriteJson(w, http.StatusOK, runResponse{Outcome: string(outcome)})
}

// ResetMarker clears the alert marker so the current result may alert again.
func (mc *MonitorController) ResetMarker(w http.ResponseWriter, r *http.Request) {
	if err := mc.markers.ClearMarker(); err != nil {
		mc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Unable to clear marker: %s", err)
		providers.WriteJsonError(w, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
