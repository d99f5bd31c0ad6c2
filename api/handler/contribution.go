package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/pkg/httpcontext"
	"github.com/rbe-platform/backend/repository"
	contributionUC "github.com/rbe-platform/backend/usecase/contribution"
)

type ContributionHandler struct {
	baseHandler
	uc *contributionUC.UseCase
}

func NewContributionHandler(uc *contributionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ContributionHandler {
	return &ContributionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func (h *ContributionHandler) Submit(ctx *fasthttp.RequestCtx) {
	userID, ok := h.userID(ctx)
	if !ok {
		return
	}

	var req transport.CreateContributionRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Submit(stdCtx, req.ToDomain(userID))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusCreated, created, "Contribution submitted successfully")
}

func (h *ContributionHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	contribution, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, contribution)
}

// List returns the caller's own contributions unless a moderator asks for
// another user's or a status slice.
func (h *ContributionHandler) List(ctx *fasthttp.RequestCtx) {
	userID, ok := h.userID(ctx)
	if !ok {
		return
	}

	filter := repository.ContributionFilter{
		UserID: userID,
		Status: queryString(ctx, "status"),
		Page:   queryInt(ctx, "page", 1),
		Limit:  queryInt(ctx, "limit", 10),
	}

	role := string(ctx.Request.Header.Peek("X-User-Role"))
	if role == domain.RoleAdmin || role == domain.RoleModerator {
		if requested := queryString(ctx, "user_id"); requested != "" {
			filter.UserID = requested
		} else if queryString(ctx, "status") != "" {
			filter.UserID = ""
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	contributions, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondData(ctx, http.StatusOK, contributions)
}

func (h *ContributionHandler) Review(ctx *fasthttp.RequestCtx) {
	reviewerID, ok := h.userID(ctx)
	if !ok {
		return
	}

	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.ReviewContributionRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reviewed, err := h.uc.Review(stdCtx, id, req.Status, reviewerID, req.Verified)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, reviewed, "Contribution reviewed successfully")
}
