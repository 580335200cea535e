package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/smoralesdev/cartaqr-backend/api/responses"
	"github.com/smoralesdev/cartaqr-backend/pkg/config"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

const readyTimeout = 5 * time.Second

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NamedPinger pairs a dependency with the name reported on failures.
type NamedPinger struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-CartaQR-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and aggregates the failures so one
// broken backend does not mask another.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...NamedPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CartaQR-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		var errs error
		failed := make([]string, 0)
		for _, dep := range deps {
			if dep.Pinger == nil {
				continue
			}
			if err := dep.Pinger.Ping(ctx); err != nil {
				errs = multierr.Append(errs, err)
				failed = append(failed, dep.Name)
			}
		}

		if errs != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check").
				WithDetails(map[string]any{"failed": failed})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
