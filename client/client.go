// Package client is the typed Go consumer of the platform API. It mirrors
// the REST surface one method per endpoint, decodes the response envelope
// and surfaces envelope errors as APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rbe-platform/backend/api/transport"
	"github.com/rbe-platform/backend/domain"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx envelope decoded from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client talks to the platform API.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken seeds the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a Client rooted at baseURL (e.g. "http://localhost:5000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the stored bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success    bool                  `json:"success"`
	Data       json.RawMessage       `json:"data"`
	Error      string                `json:"error"`
	Message    string                `json:"message"`
	Pagination *transport.Pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}
	return &env, nil
}

func decode[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](env)
}

func post[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](env)
}

func put[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	env, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](env)
}

func del[T any](ctx context.Context, c *Client, path string) (T, error) {
	env, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](env)
}

// ListOptions narrows a listing. Zero values are omitted from the query.
type ListOptions struct {
	Region    string
	Category  string
	Status    string
	UserID    string
	StartDate string
	EndDate   string
	SortBy    string
	Order     string
	Page      int
	Limit     int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("region", o.Region)
	set("category", o.Category)
	set("status", o.Status)
	set("user_id", o.UserID)
	set("start_date", o.StartDate)
	set("end_date", o.EndDate)
	set("sort_by", o.SortBy)
	set("order", o.Order)
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// Resources

// ResourcePage is a page of resources plus its pagination block.
type ResourcePage struct {
	Items      []domain.Resource
	Pagination *transport.Pagination
}

func (c *Client) ListResources(ctx context.Context, opts ListOptions) (*ResourcePage, error) {
	env, err := c.do(ctx, http.MethodGet, "/resources", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	items, err := decode[[]domain.Resource](env)
	if err != nil {
		return nil, err
	}
	return &ResourcePage{Items: items, Pagination: env.Pagination}, nil
}

func (c *Client) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	return get[*domain.Resource](ctx, c, "/resources/"+url.PathEscape(id), nil)
}

func (c *Client) CreateResource(ctx context.Context, req transport.CreateResourceRequest) (*domain.Resource, error) {
	return post[*domain.Resource](ctx, c, "/resources", req)
}

func (c *Client) UpdateResource(ctx context.Context, id string, req transport.UpdateResourceRequest) (*domain.Resource, error) {
	return put[*domain.Resource](ctx, c, "/resources/"+url.PathEscape(id), req)
}

func (c *Client) DeleteResource(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/resources/"+url.PathEscape(id))
	return err
}

func (c *Client) ResourceCategories(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, c, "/resources/meta/categories", nil)
}

func (c *Client) ResourceRegions(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, c, "/resources/meta/regions", nil)
}

// Principles

func (c *Client) ListPrinciples(ctx context.Context, opts ListOptions) ([]domain.Principle, error) {
	env, err := c.do(ctx, http.MethodGet, "/principles", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Principle](env)
}

func (c *Client) GetPrinciple(ctx context.Context, number int) (*domain.Principle, error) {
	return get[*domain.Principle](ctx, c, "/principles/"+strconv.Itoa(number), nil)
}

func (c *Client) UpdatePrinciple(ctx context.Context, number int, req transport.UpdatePrincipleRequest) (*domain.Principle, error) {
	return put[*domain.Principle](ctx, c, "/principles/"+strconv.Itoa(number), req)
}

func (c *Client) PrincipleSummary(ctx context.Context) (*domain.PrincipleSummary, error) {
	return get[*domain.PrincipleSummary](ctx, c, "/principles/stats/summary", nil)
}

func (c *Client) PrinciplesByCategory(ctx context.Context) ([]domain.PrincipleCategoryStat, error) {
	return get[[]domain.PrincipleCategoryStat](ctx, c, "/principles/stats/by-category", nil)
}

// Cooperation

func (c *Client) ListCooperation(ctx context.Context, opts ListOptions) ([]domain.CooperationMetric, error) {
	env, err := c.do(ctx, http.MethodGet, "/cooperation", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.CooperationMetric](env)
}

func (c *Client) GetCooperation(ctx context.Context, id string) (*domain.CooperationMetric, error) {
	return get[*domain.CooperationMetric](ctx, c, "/cooperation/"+url.PathEscape(id), nil)
}

func (c *Client) CreateCooperation(ctx context.Context, req transport.CreateCooperationRequest) (*domain.CooperationMetric, error) {
	return post[*domain.CooperationMetric](ctx, c, "/cooperation", req)
}

func (c *Client) DeleteCooperation(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/cooperation/"+url.PathEscape(id))
	return err
}

func (c *Client) CooperationByRegion(ctx context.Context) ([]domain.CooperationRegionStat, error) {
	return get[[]domain.CooperationRegionStat](ctx, c, "/cooperation/stats/by-region", nil)
}

func (c *Client) CooperationByType(ctx context.Context) ([]domain.CooperationTypeStat, error) {
	return get[[]domain.CooperationTypeStat](ctx, c, "/cooperation/stats/by-type", nil)
}

// Automation

func (c *Client) ListAutomation(ctx context.Context, opts ListOptions) ([]domain.AutomationProgress, error) {
	env, err := c.do(ctx, http.MethodGet, "/automation", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.AutomationProgress](env)
}

func (c *Client) GetAutomation(ctx context.Context, id string) (*domain.AutomationProgress, error) {
	return get[*domain.AutomationProgress](ctx, c, "/automation/"+url.PathEscape(id), nil)
}

func (c *Client) CreateAutomation(ctx context.Context, req transport.CreateAutomationRequest) (*domain.AutomationProgress, error) {
	return post[*domain.AutomationProgress](ctx, c, "/automation", req)
}

func (c *Client) DeleteAutomation(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/automation/"+url.PathEscape(id))
	return err
}

func (c *Client) AutomationBySector(ctx context.Context) ([]domain.AutomationSectorStat, error) {
	return get[[]domain.AutomationSectorStat](ctx, c, "/automation/stats/by-sector", nil)
}

func (c *Client) AutomationSummary(ctx context.Context) (*domain.AutomationSummary, error) {
	return get[*domain.AutomationSummary](ctx, c, "/automation/stats/summary", nil)
}

// Environmental

func (c *Client) ListEnvironmental(ctx context.Context, opts ListOptions) ([]domain.EnvironmentalMetric, error) {
	env, err := c.do(ctx, http.MethodGet, "/environmental", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.EnvironmentalMetric](env)
}

func (c *Client) GetEnvironmental(ctx context.Context, id string) (*domain.EnvironmentalMetric, error) {
	return get[*domain.EnvironmentalMetric](ctx, c, "/environmental/"+url.PathEscape(id), nil)
}

func (c *Client) CreateEnvironmental(ctx context.Context, req transport.CreateEnvironmentalRequest) (*domain.EnvironmentalMetric, error) {
	return post[*domain.EnvironmentalMetric](ctx, c, "/environmental", req)
}

func (c *Client) DeleteEnvironmental(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/environmental/"+url.PathEscape(id))
	return err
}

func (c *Client) EnvironmentalByType(ctx context.Context) ([]domain.EnvironmentalTypeStat, error) {
	return get[[]domain.EnvironmentalTypeStat](ctx, c, "/environmental/stats/by-type", nil)
}

func (c *Client) EnvironmentalLatest(ctx context.Context) ([]domain.EnvironmentalLatest, error) {
	return get[[]domain.EnvironmentalLatest](ctx, c, "/environmental/stats/latest", nil)
}

// Social

func (c *Client) ListSocial(ctx context.Context, opts ListOptions) ([]domain.SocialMetric, error) {
	env, err := c.do(ctx, http.MethodGet, "/social", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.SocialMetric](env)
}

func (c *Client) GetSocial(ctx context.Context, id string) (*domain.SocialMetric, error) {
	return get[*domain.SocialMetric](ctx, c, "/social/"+url.PathEscape(id), nil)
}

func (c *Client) CreateSocial(ctx context.Context, req transport.CreateSocialRequest) (*domain.SocialMetric, error) {
	return post[*domain.SocialMetric](ctx, c, "/social", req)
}

func (c *Client) DeleteSocial(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/social/"+url.PathEscape(id))
	return err
}

func (c *Client) SocialByCategory(ctx context.Context) ([]domain.SocialCategoryStat, error) {
	return get[[]domain.SocialCategoryStat](ctx, c, "/social/stats/by-category", nil)
}

func (c *Client) SocialByRegion(ctx context.Context) ([]domain.SocialRegionStat, error) {
	return get[[]domain.SocialRegionStat](ctx, c, "/social/stats/by-region", nil)
}

func (c *Client) SocialLatest(ctx context.Context) ([]domain.SocialLatest, error) {
	return get[[]domain.SocialLatest](ctx, c, "/social/stats/latest", nil)
}

// Circular cities

func (c *Client) ListCities(ctx context.Context, opts ListOptions) ([]domain.CircularCity, error) {
	env, err := c.do(ctx, http.MethodGet, "/cities", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.CircularCity](env)
}

func (c *Client) GetCity(ctx context.Context, id string) (*domain.CircularCity, error) {
	return get[*domain.CircularCity](ctx, c, "/cities/"+url.PathEscape(id), nil)
}

func (c *Client) CreateCity(ctx context.Context, req transport.CreateCityRequest) (*domain.CircularCity, error) {
	return post[*domain.CircularCity](ctx, c, "/cities", req)
}

func (c *Client) UpdateCity(ctx context.Context, id string, req transport.UpdateCityRequest) (*domain.CircularCity, error) {
	return put[*domain.CircularCity](ctx, c, "/cities/"+url.PathEscape(id), req)
}

func (c *Client) DeleteCity(ctx context.Context, id string) error {
	_, err := del[transport.DeletedPayload](ctx, c, "/cities/"+url.PathEscape(id))
	return err
}

func (c *Client) CitiesByStatus(ctx context.Context) ([]domain.CityStatusStat, error) {
	return get[[]domain.CityStatusStat](ctx, c, "/cities/stats/by-status", nil)
}

func (c *Client) CitySummary(ctx context.Context) (*domain.CitySummary, error) {
	return get[*domain.CitySummary](ctx, c, "/cities/stats/summary", nil)
}

// Auth. Register, Login and Refresh store the returned token on the client.

func (c *Client) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthPayload, error) {
	payload, err := post[*transport.AuthPayload](ctx, c, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	c.SetToken(payload.Token)
	return payload, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*transport.AuthPayload, error) {
	payload, err := post[*transport.AuthPayload](ctx, c, "/auth/login", transport.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.SetToken(payload.Token)
	return payload, nil
}

func (c *Client) Me(ctx context.Context) (*domain.PublicUser, error) {
	return get[*domain.PublicUser](ctx, c, "/auth/me", nil)
}

func (c *Client) Refresh(ctx context.Context) (*transport.AuthPayload, error) {
	payload, err := post[*transport.AuthPayload](ctx, c, "/auth/refresh", nil)
	if err != nil {
		return nil, err
	}
	c.SetToken(payload.Token)
	return payload, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := put[json.RawMessage](ctx, c, "/auth/change-password", transport.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	return err
}

// Contributions

func (c *Client) SubmitContribution(ctx context.Context, req transport.CreateContributionRequest) (*domain.UserContribution, error) {
	return post[*domain.UserContribution](ctx, c, "/contributions", req)
}

func (c *Client) GetContribution(ctx context.Context, id string) (*domain.UserContribution, error) {
	return get[*domain.UserContribution](ctx, c, "/contributions/"+url.PathEscape(id), nil)
}

func (c *Client) ListContributions(ctx context.Context, opts ListOptions) ([]domain.UserContribution, error) {
	env, err := c.do(ctx, http.MethodGet, "/contributions", opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.UserContribution](env)
}

func (c *Client) ReviewContribution(ctx context.Context, id string, req transport.ReviewContributionRequest) (*domain.UserContribution, error) {
	return put[*domain.UserContribution](ctx, c, "/contributions/"+url.PathEscape(id)+"/review", req)
}

// Health

func (c *Client) Health(ctx context.Context) (*transport.HealthPayload, error) {
	return get[*transport.HealthPayload](ctx, c, "/health", nil)
}
