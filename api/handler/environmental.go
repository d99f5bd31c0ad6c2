package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/usecase/metrics"
)

type EnvironmentalHandler struct {
	baseHandler
	uc *metrics.EnvironmentalUseCase
}

func NewEnvironmentalHandler(uc *metrics.EnvironmentalUseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EnvironmentalHandler {
	return &EnvironmentalHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *EnvironmentalHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.List(stdCtx, timeSeriesFilter(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, items)
}

func (h *EnvironmentalHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	metric, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, metric)
}

func (h *EnvironmentalHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateEnvironmentalRequest
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
	h.respondMessage(ctx, http.StatusCreated, created, "Environmental metric created successfully")
}

func (h *EnvironmentalHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondMessage(ctx, http.StatusOK, transport.DeletedPayload{ID: id}, "Environmental metric deleted successfully")
}

func (h *EnvironmentalHandler) StatsByType(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsByType(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}

func (h *EnvironmentalHandler) Latest(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	latest, err := h.uc.Latest(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, latest)
}
