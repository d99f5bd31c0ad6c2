package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/internal/validation"
	"github.com/rbe-platform/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondData(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.Success(data))
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, data interface{}, message string) {
	h.respondJSON(ctx, status, transport.SuccessMessage(data, message))
}

func (h baseHandler) respondPage(ctx *fasthttp.RequestCtx, data interface{}, pagination *transport.Pagination) {
	h.respondJSON(ctx, http.StatusOK, transport.SuccessPage(data, pagination))
}

// respondError maps domain error codes onto HTTP statuses. Classified
// errors surface only their domain message; unclassified errors are
// logged and masked.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", string(ctx.Path())),
			zap.Error(err),
		)
		h.respondJSON(ctx, status, transport.Failure("Internal server error"))
		return
	}

	message := err.Error()
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		message = dErr.Message
	}
	h.respondJSON(ctx, status, transport.Failure(message))
}

func errorStatus(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict
	case domain.IsDomainError(err, domain.ErrCodeRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody unmarshals and validates a request payload. On failure the
// error envelope is already written.
func (h baseHandler) decodeBody(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Failure("invalid payload"))
		return false
	}
	if err := validation.ValidateStruct(dst); err != nil {
		h.respondError(ctx, err)
		return false
	}
	return true
}

// pathID extracts the {id} route segment.
func (h baseHandler) pathID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Failure("missing id"))
		return "", false
	}
	return id, true
}

// userID reads the identity forwarded by the auth middleware.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) (string, bool) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.Failure(domain.ErrUnauthorized.Message))
		return "", false
	}
	return userID, true
}

func queryString(ctx *fasthttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *fasthttp.RequestCtx, key string, fallback int) int {
	if v, err := strconv.Atoi(queryString(ctx, key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
