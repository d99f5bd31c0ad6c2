package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/repository"
	cityUC "github.com/rbe-platform/backend/usecase/city"
)

type CityHandler struct {
	baseHandler
	uc *cityUC.UseCase
}

func NewCityHandler(uc *cityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *CityHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.CityFilter{
		Region: queryString(ctx, "region"),
		Status: queryString(ctx, "status"),
		Page:   queryInt(ctx, "page", 1),
		Limit:  queryInt(ctx, "limit", 50),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	cities, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, cities)
}

func (h *CityHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	city, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, city)
}

func (h *CityHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateCityRequest
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
	h.respondMessage(ctx, http.StatusCreated, created, "Circular city created successfully")
}

func (h *CityHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateCityRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, req.ToPatch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, updated, "Circular city updated successfully")
}

func (h *CityHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondMessage(ctx, http.StatusOK, transport.DeletedPayload{ID: id}, "Circular city deleted successfully")
}

func (h *CityHandler) StatsByStatus(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsByStatus(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}

func (h *CityHandler) Summary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, summary)
}
