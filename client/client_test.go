package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
)

func TestListResourcesDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resources", r.URL.Path)
		assert.Equal(t, "europe", r.URL.Query().Get("region"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": "res-1", "name": "Solar capacity", "region": "europe"},
			},
			"pagination": map[string]interface{}{"page": 2, "limit": 10, "total": 25, "pages": 3},
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	page, err := c.ListResources(context.Background(), ListOptions{Region: "europe", Page: 2, Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "res-1", page.Items[0].ID)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, 3, page.Pagination.Pages)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Resource not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	_, err := c.GetResource(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Resource not found", apiErr.Message)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"user":  map[string]interface{}{"id": "user-1", "email": "ada@example.org"},
					"token": "signed-token",
				},
			})
		case "/api/auth/me":
			assert.Equal(t, "Bearer signed-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"id": "user-1", "email": "ada@example.org"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	payload, err := c.Login(context.Background(), "ada@example.org", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", payload.Token)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
}

func TestCreateResourceSendsValidatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req transport.CreateResourceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "energy", req.Category)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    domain.Resource{ID: "res-1", Category: req.Category, Name: req.Name, Region: "global"},
			"message": "Resource created successfully",
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	created, err := c.CreateResource(context.Background(), transport.CreateResourceRequest{
		Category:      "energy",
		Name:          "Solar capacity",
		CurrentAmount: 1500,
		Unit:          "GW",
	})
	require.NoError(t, err)
	assert.Equal(t, "res-1", created.ID)
	assert.Equal(t, "global", created.Region)
}

func TestEmptyListDecodesToEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	cities, err := c.ListCities(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, cities)
	assert.Empty(t, cities)
}
