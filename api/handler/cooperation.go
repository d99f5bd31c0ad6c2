package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/repository"
	"github.com/rbe-platform/backend/usecase/metrics"
)

// timeSeriesFilter collects the shared query parameters of the four
// time-series listings.
func timeSeriesFilter(ctx *fasthttp.RequestCtx) repository.TimeSeriesFilter {
	return repository.TimeSeriesFilter{
		Region:    queryString(ctx, "region"),
		Category:  queryString(ctx, "category"),
		StartDate: queryString(ctx, "start_date"),
		EndDate:   queryString(ctx, "end_date"),
		Page:      queryInt(ctx, "page", 1),
		Limit:     queryInt(ctx, "limit", 50),
	}
}

type CooperationHandler struct {
	baseHandler
	uc *metrics.CooperationUseCase
}

func NewCooperationHandler(uc *metrics.CooperationUseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CooperationHandler {
	return &CooperationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *CooperationHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.List(stdCtx, timeSeriesFilter(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, items)
}

func (h *CooperationHandler) Get(ctx *fasthttp.RequestCtx) {
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

func (h *CooperationHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateCooperationRequest
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
	h.respondMessage(ctx, http.StatusCreated, created, "Cooperation metric created successfully")
}

func (h *CooperationHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondMessage(ctx, http.StatusOK, transport.DeletedPayload{ID: id}, "Cooperation metric deleted successfully")
}

func (h *CooperationHandler) StatsByRegion(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsByRegion(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}

func (h *CooperationHandler) StatsByType(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsByType(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}
