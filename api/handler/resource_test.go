package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
	resourceUC "github.com/rbe-platform/backend/usecase/resource"
)

type fakeResourceRepo struct {
	resources  map[string]*domain.Resource
	total      int64
	lastFilter repository.ResourceFilter
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: map[string]*domain.Resource{}}
}

func (r *fakeResourceRepo) List(_ context.Context, filter repository.ResourceFilter) ([]domain.Resource, int64, error) {
	r.lastFilter = filter
	out := []domain.Resource{}
	for _, res := range r.resources {
		out = append(out, *res)
	}
	total := r.total
	if total == 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return res, nil
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if resource.ID == "" {
		resource.ID = "res-1"
	}
	r.resources[resource.ID] = resource
	return resource, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	if patch.Name != nil {
		res.Name = *patch.Name
	}
	return res, nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.resources[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *fakeResourceRepo) Categories(_ context.Context) ([]string, error) {
	return []string{"energy", "water"}, nil
}

func (r *fakeResourceRepo) Regions(_ context.Context) ([]string, error) {
	return []string{"global"}, nil
}

type envelopeBody struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func parseEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func newResourceHandler(repo *fakeResourceRepo) *ResourceHandler {
	return NewResourceHandler(resourceUC.New(repo, nil), nil, nil)
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestResourceCreateDefaultsRegion(t *testing.T) {
	repo := newFakeResourceRepo()
	h := newResourceHandler(repo)

	body := []byte(`{"category":"energy","name":"Solar capacity","current_amount":1500,"unit":"GW"}`)
	ctx := newRequestCtx(http.MethodPost, "/api/resources", body)

	h.Create(ctx)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.True(t, env.Success)
	assert.Equal(t, "Resource created successfully", env.Message)

	var created domain.Resource
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, domain.DefaultRegion, created.Region)
}

func TestResourceCreateRejectsInvalidPayload(t *testing.T) {
	h := newResourceHandler(newFakeResourceRepo())

	ctx := newRequestCtx(http.MethodPost, "/api/resources", []byte(`{"category":"","name":"x","current_amount":-1,"unit":""}`))
	h.Create(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestResourceGetNotFound(t *testing.T) {
	h := newResourceHandler(newFakeResourceRepo())

	ctx := newRequestCtx(http.MethodGet, "/api/resources/missing", nil)
	ctx.SetUserValue("id", "missing")
	h.Get(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.False(t, env.Success)
	assert.Equal(t, "Resource not found", env.Error)
}

func TestResourceListEmptyIsArray(t *testing.T) {
	h := newResourceHandler(newFakeResourceRepo())

	ctx := newRequestCtx(http.MethodGet, "/api/resources", nil)
	h.List(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", string(env.Data))
}

func TestResourceListPaginationMath(t *testing.T) {
	repo := newFakeResourceRepo()
	repo.total = 25
	h := newResourceHandler(repo)

	ctx := newRequestCtx(http.MethodGet, "/api/resources?page=2&limit=10&region=europe", nil)
	h.List(ctx)

	env := parseEnvelope(t, ctx)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.Limit)
	assert.Equal(t, int64(25), env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.Pages)

	assert.Equal(t, "europe", repo.lastFilter.Region)
	assert.Equal(t, 2, repo.lastFilter.Page)
}

func TestResourceUpdateEmptyPatchRejected(t *testing.T) {
	repo := newFakeResourceRepo()
	repo.resources["res-1"] = &domain.Resource{ID: "res-1", Name: "Solar"}
	h := newResourceHandler(repo)

	ctx := newRequestCtx(http.MethodPut, "/api/resources/res-1", []byte(`{}`))
	ctx.SetUserValue("id", "res-1")
	h.Update(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.Equal(t, "No valid fields to update", env.Error)
}

func TestResourceDeleteReturnsID(t *testing.T) {
	repo := newFakeResourceRepo()
	repo.resources["res-1"] = &domain.Resource{ID: "res-1"}
	h := newResourceHandler(repo)

	ctx := newRequestCtx(http.MethodDelete, "/api/resources/res-1", nil)
	ctx.SetUserValue("id", "res-1")
	h.Delete(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.JSONEq(t, `{"id":"res-1"}`, string(env.Data))

	// Get after delete is a 404.
	getCtx := newRequestCtx(http.MethodGet, "/api/resources/res-1", nil)
	getCtx.SetUserValue("id", "res-1")
	h.Get(getCtx)
	assert.Equal(t, http.StatusNotFound, getCtx.Response.StatusCode())
}

func TestRouteNotFoundEnvelope(t *testing.T) {
	h := NewIndexHandler("rbe-platform", "1.0.0", nil, nil)

	ctx := newRequestCtx(http.MethodGet, "/api/nope", nil)
	h.NotFound(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	env := parseEnvelope(t, ctx)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Error)
}
