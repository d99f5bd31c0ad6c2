package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
)

type IndexHandler struct {
	baseHandler
	name    string
	version string
}

func NewIndexHandler(name, version string, adapter *httpcontext.Adapter, logger *zap.Logger) *IndexHandler {
	return &IndexHandler{
		baseHandler: newBaseHandler(adapter, logger),
		name:        name,
		version:     version,
	}
}

// Root describes the API surface for unauthenticated discovery.
func (h *IndexHandler) Root(ctx *fasthttp.RequestCtx) {
	h.respondData(ctx, http.StatusOK, transport.APIIndex{
		Name:    h.name,
		Version: h.version,
		Endpoints: map[string]string{
			"health":        "/api/health",
			"auth":          "/api/auth",
			"resources":     "/api/resources",
			"principles":    "/api/principles",
			"cooperation":   "/api/cooperation",
			"automation":    "/api/automation",
			"environmental": "/api/environmental",
			"social":        "/api/social",
			"cities":        "/api/cities",
			"contributions": "/api/contributions",
		},
	})
}

// NotFound is the catch-all for undefined routes.
func (h *IndexHandler) NotFound(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusNotFound, transport.Failure("Route not found"))
}
