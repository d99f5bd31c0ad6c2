package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/usecase/metrics"
)

type AutomationHandler struct {
	baseHandler
	uc *metrics.AutomationUseCase
}

func NewAutomationHandler(uc *metrics.AutomationUseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AutomationHandler {
	return &AutomationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *AutomationHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.List(stdCtx, timeSeriesFilter(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, items)
}

func (h *AutomationHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, record)
}

func (h *AutomationHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateAutomationRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, req.ToDomain())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusCreated, created, "Automation record created successfully")
}

func (h *AutomationHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, transport.DeletedPayload{ID: id}, "Automation record deleted successfully")
}

func (h *AutomationHandler) StatsBySector(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsBySector(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}

func (h *AutomationHandler) Summary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, summary)
}
