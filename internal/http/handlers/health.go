package handlers

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type healthBody struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Health reports whether the API can reach Postgres.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.DB == nil {
		a.json(w, http.StatusOK, healthBody{Status: "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := a.DB.Ping(ctx); err != nil {
		a.logger(r).Warn().Err(err).Msg("database ping failed")
		a.json(w, http.StatusServiceUnavailable, healthBody{Status: "degraded", Database: "unavailable"})
		return
	}
	a.json(w, http.StatusOK, healthBody{Status: "ok", Database: "ok"})
}
