package handler

import (
	"context"
	"net/http"
	"time"

	"mindcare-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

// HealthCheck pings one backing dependency
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
	log    *logrus.Logger
}

func NewHealthHandler(log *logrus.Logger, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    log,
	}
}

// Check reports every dependency's status; any failure turns the response into a 503
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warnf("Health check %s failed: %+v", name, err)
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service degraded", status)
		return
	}
	response.Success(w, http.StatusOK, "ok", status)
}
