package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/repository"
	resourceUC "github.com/rbe-platform/backend/usecase/resource"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 500
)

type ResourceHandler struct {
	baseHandler
	uc *resourceUC.UseCase
}

func NewResourceHandler(uc *resourceUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// List is the only paginated listing; its envelope carries a pagination
// block derived from a count over the same filter set.
func (h *ResourceHandler) List(ctx *fasthttp.RequestCtx) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := repository.ResourceFilter{
		Region:   queryString(ctx, "region"),
		Category: queryString(ctx, "category"),
		SortBy:   queryString(ctx, "sort_by"),
		Order:    queryString(ctx, "order"),
		Page:     page,
		Limit:    limit,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resources, total, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondPage(ctx, resources, transport.NewPagination(page, limit, total))
}

func (h *ResourceHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	resource, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, resource)
}

func (h *ResourceHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CreateResourceRequest
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
	h.respondMessage(ctx, http.StatusCreated, created, "Resource created successfully")
}

func (h *ResourceHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateResourceRequest
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
	h.respondMessage(ctx, http.StatusOK, updated, "Resource updated successfully")
}

func (h *ResourceHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondMessage(ctx, http.StatusOK, transport.DeletedPayload{ID: id}, "Resource deleted successfully")
}

func (h *ResourceHandler) Categories(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	categories, err := h.uc.Categories(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, categories)
}

func (h *ResourceHandler) Regions(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	regions, err := h.uc.Regions(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, regions)
}
