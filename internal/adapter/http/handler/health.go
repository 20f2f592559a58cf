package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	serviceName string
	db          Pinger
	log         logger.Logger
}

func NewHealth(serviceName string, db Pinger, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		db:          db,
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service and its database
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /health [get]
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	status, code, dbStatus := "available", http.StatusOK, "up"
	if a.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := a.db.Ping(pingCtx); err != nil {
			a.log.Warn(ctx, "database ping failed", "err", err.Error())
			status, code, dbStatus = "degraded", http.StatusServiceUnavailable, "down"
		}
	}

	response := envelope{
		"status": status,
		"system_info": map[string]string{
			"service-name": a.serviceName,
			"database":     dbStatus,
		},
	}

	if err := writeJSON(w, code, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
