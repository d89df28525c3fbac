package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventcheckin/internal/delivery/http/helpers"
)

// storePingTimeout bounds the liveness probe's round trip to the store.
const storePingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	Logger *slog.Logger
	Store  Pinger
}

func NewHealthController(logger *slog.Logger, store Pinger) *HealthController {
	return &HealthController{Logger: logger, Store: store}
}

// HealthResponse is the data payload for GET /healthz (200).
type HealthResponse struct {
	Status string `json:"status"`
}

// Live answers the liveness probe. The process is only considered live when
// the store answers a ping within storePingTimeout.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storePingTimeout)
	defer cancel()
	if err := c.Store.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "store ping failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreUnavailable, "store unreachable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
