package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rbe-platform/backend/domain"
)

func TestClassifiedErrorHidesWrappedCause(t *testing.T) {
	h := newBaseHandler(nil, nil)

	cause := errors.New("token contains an invalid number of segments")
	err := domain.WrapError(domain.ErrCodeUnauthorized, "Invalid or expired token", cause)

	ctx := newRequestCtx(http.MethodGet, "/api/auth/me", nil)
	h.respondError(ctx, err)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid or expired token", env.Error)
	assert.NotContains(t, string(ctx.Response.Body()), "segments")
}

func TestUnclassifiedErrorIsMasked(t *testing.T) {
	h := newBaseHandler(nil, nil)

	ctx := newRequestCtx(http.MethodGet, "/api/resources", nil)
	h.respondError(ctx, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.Equal(t, "Internal server error", env.Error)
	assert.NotContains(t, string(ctx.Response.Body()), "10.0.0.5")
}
