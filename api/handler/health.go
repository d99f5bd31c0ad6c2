package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/internal/infrastructure/monitor"
	"github.com/rbe-platform/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// Check reports liveness plus cached dependency reachability. Postgres is
// the hard dependency; redis only degrades rate limiting.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := transport.HealthPayload{
		Status:     "ok",
		Timestamp:  time.Now().UTC(),
		UptimeSecs: h.monitor.Uptime().Seconds(),
		PostgreSQL: status.PostgreSQL,
		Redis:      status.Redis,
	}

	if !status.PostgreSQL {
		payload.Status = "degraded"
		h.respondData(ctx, http.StatusServiceUnavailable, payload)
		return
	}
	h.respondData(ctx, http.StatusOK, payload)
}
