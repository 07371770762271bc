package controllers

import (
	"context"
	"net/http"

	"github.com/swiftcargo/swiftcargo-backend/api/responses"
	"github.com/swiftcargo/swiftcargo-backend/pkg/config"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwiftCargo-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency readiness. Redis is optional: when the
// tariff cache is disabled the check is skipped rather than failed.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwiftCargo-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "readiness db ping failed", err)
				}
			} else {
				checks["db"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "readiness redis ping failed", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "skipped"
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
