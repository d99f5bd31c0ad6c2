package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/pkg/token"
)

// Middleware wraps a fasthttp handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// JWTAuth verifies the bearer token and forwards the identity to handlers
// through X-User-* request headers.
func JWTAuth(tokens *token.Manager, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				respondFailure(ctx, fasthttp.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("invalid jwt token", zap.Error(err))
				respondFailure(ctx, fasthttp.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx.Request.Header.Set("X-User-ID", claims.UserID)
			ctx.Request.Header.Set("X-User-Email", claims.Email)
			ctx.Request.Header.Set("X-User-Role", claims.Role)

			next(ctx)
		}
	}
}

// RequireRoles gates a handler to the listed roles. It assumes JWTAuth has
// already populated the identity headers.
func RequireRoles(roles ...string) Middleware {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			role := string(ctx.Request.Header.Peek("X-User-Role"))
			if _, ok := allowed[role]; !ok {
				respondFailure(ctx, fasthttp.StatusForbidden, domain.ErrForbidden.Message)
				return
			}
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func respondFailure(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.Failure(message))
	ctx.SetBody(body)
}
