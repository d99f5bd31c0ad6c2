package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/repository"
	principleUC "github.com/rbe-platform/backend/usecase/principle"
)

type PrincipleHandler struct {
	baseHandler
	uc *principleUC.UseCase
}

func NewPrincipleHandler(uc *principleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PrincipleHandler {
	return &PrincipleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *PrincipleHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.PrincipleFilter{
		Region:   queryString(ctx, "region"),
		Category: queryString(ctx, "category"),
		Status:   queryString(ctx, "status"),
		Page:     queryInt(ctx, "page", 1),
		Limit:    queryInt(ctx, "limit", 100),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	principles, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, principles)
}

func (h *PrincipleHandler) Get(ctx *fasthttp.RequestCtx) {
	number, ok := h.principleNumber(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	principle, err := h.uc.GetByNumber(stdCtx, number)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, principle)
}

func (h *PrincipleHandler) Update(ctx *fasthttp.RequestCtx) {
	number, ok := h.principleNumber(ctx)
	if !ok {
		return
	}

	var req transport.UpdatePrincipleRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateByNumber(stdCtx, number, req.ToPatch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, updated, "Principle updated successfully")
}

func (h *PrincipleHandler) StatsSummary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.StatsSummary(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, summary)
}

func (h *PrincipleHandler) StatsByCategory(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.StatsByCategory(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, stats)
}

func (h *PrincipleHandler) principleNumber(ctx *fasthttp.RequestCtx) (int, bool) {
	raw, _ := ctx.UserValue("number").(string)
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Failure("Invalid principle number"))
		return 0, false
	}
	return number, true
}
