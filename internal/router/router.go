package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rbe-platform/backend/api/handler"
	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/internal/middleware"
)

type Handlers struct {
	Index         *apiHandler.IndexHandler
	Health        *apiHandler.HealthHandler
	Auth          *apiHandler.AuthHandler
	Resource      *apiHandler.ResourceHandler
	Principle     *apiHandler.PrincipleHandler
	Cooperation   *apiHandler.CooperationHandler
	Automation    *apiHandler.AutomationHandler
	Environmental *apiHandler.EnvironmentalHandler
	Social        *apiHandler.SocialHandler
	City          *apiHandler.CityHandler
	Contribution  *apiHandler.ContributionHandler
}

// Middlewares carries the cross-cutting wrappers the route table composes.
type Middlewares struct {
	Auth      middleware.Middleware
	APILimit  *middleware.RateLimit
	AuthLimit *middleware.RateLimit
}

// New assembles the route table. Static segments register before the
// parameterized {id} routes they shadow.
func New(handlers Handlers, mw Middlewares) *router.Router {
	r := router.New()
	r.NotFound = handlers.Index.NotFound

	limited := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return mw.APILimit.Wrap(h)
	}
	authLimited := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return mw.AuthLimit.Wrap(h)
	}
	protected := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return limited(mw.Auth(h))
	}
	moderated := middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator)

	r.GET("/", handlers.Index.Root)
	r.GET("/api/health", handlers.Health.Check)

	// Auth
	r.POST("/api/auth/register", authLimited(handlers.Auth.Register))
	r.POST("/api/auth/login", authLimited(handlers.Auth.Login))
	r.GET("/api/auth/me", protected(handlers.Auth.Me))
	r.POST("/api/auth/refresh", protected(handlers.Auth.Refresh))
	r.PUT("/api/auth/change-password", protected(handlers.Auth.ChangePassword))

	// Resources
	r.GET("/api/resources", limited(handlers.Resource.List))
	r.GET("/api/resources/meta/categories", limited(handlers.Resource.Categories))
	r.GET("/api/resources/meta/regions", limited(handlers.Resource.Regions))
	r.GET("/api/resources/{id}", limited(handlers.Resource.Get))
	r.POST("/api/resources", protected(handlers.Resource.Create))
	r.PUT("/api/resources/{id}", protected(handlers.Resource.Update))
	r.DELETE("/api/resources/{id}", protected(handlers.Resource.Delete))

	// Principles (fixed dataset; update only)
	r.GET("/api/principles", limited(handlers.Principle.List))
	r.GET("/api/principles/stats/summary", limited(handlers.Principle.StatsSummary))
	r.GET("/api/principles/stats/by-category", limited(handlers.Principle.StatsByCategory))
	r.GET("/api/principles/{number}", limited(handlers.Principle.Get))
	r.PUT("/api/principles/{number}", protected(handlers.Principle.Update))

	// Cooperation
	r.GET("/api/cooperation", limited(handlers.Cooperation.List))
	r.GET("/api/cooperation/stats/by-region", limited(handlers.Cooperation.StatsByRegion))
	r.GET("/api/cooperation/stats/by-type", limited(handlers.Cooperation.StatsByType))
	r.GET("/api/cooperation/{id}", limited(handlers.Cooperation.Get))
	r.POST("/api/cooperation", protected(handlers.Cooperation.Create))
	r.DELETE("/api/cooperation/{id}", protected(handlers.Cooperation.Delete))

	// Automation
	r.GET("/api/automation", limited(handlers.Automation.List))
	r.GET("/api/automation/stats/by-sector", limited(handlers.Automation.StatsBySector))
	r.GET("/api/automation/stats/summary", limited(handlers.Automation.Summary))
	r.GET("/api/automation/{id}", limited(handlers.Automation.Get))
	r.POST("/api/automation", protected(handlers.Automation.Create))
	r.DELETE("/api/automation/{id}", protected(handlers.Automation.Delete))

	// Environmental
	r.GET("/api/environmental", limited(handlers.Environmental.List))
	r.GET("/api/environmental/stats/by-type", limited(handlers.Environmental.StatsByType))
	r.GET("/api/environmental/stats/latest", limited(handlers.Environmental.Latest))
	r.GET("/api/environmental/{id}", limited(handlers.Environmental.Get))
	r.POST("/api/environmental", protected(handlers.Environmental.Create))
	r.DELETE("/api/environmental/{id}", protected(handlers.Environmental.Delete))

	// Social
	r.GET("/api/social", limited(handlers.Social.List))
	r.GET("/api/social/stats/by-category", limited(handlers.Social.StatsByCategory))
	r.GET("/api/social/stats/by-region", limited(handlers.Social.StatsByRegion))
	r.GET("/api/social/stats/latest", limited(handlers.Social.Latest))
	r.GET("/api/social/{id}", limited(handlers.Social.Get))
	r.POST("/api/social", protected(handlers.Social.Create))
	r.DELETE("/api/social/{id}", protected(handlers.Social.Delete))

	// Circular cities
	r.GET("/api/cities", limited(handlers.City.List))
	r.GET("/api/cities/stats/by-status", limited(handlers.City.StatsByStatus))
	r.GET("/api/cities/stats/summary", limited(handlers.City.Summary))
	r.GET("/api/cities/{id}", limited(handlers.City.Get))
	r.POST("/api/cities", protected(handlers.City.Create))
	r.PUT("/api/cities/{id}", protected(handlers.City.Update))
	r.DELETE("/api/cities/{id}", protected(handlers.City.Delete))

	// Contributions
	r.GET("/api/contributions", protected(handlers.Contribution.List))
	r.GET("/api/contributions/{id}", protected(handlers.Contribution.Get))
	r.POST("/api/contributions", protected(handlers.Contribution.Submit))
	r.PUT("/api/contributions/{id}/review", protected(moderated(handlers.Contribution.Review)))

	return r
}
