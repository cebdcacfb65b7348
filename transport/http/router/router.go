package router

import (
	"rentro/config"
	"rentro/docs"
	"rentro/infras/metrics"
	"rentro/internal/handlers/auth"
	"rentro/internal/handlers/booking"
	"rentro/internal/handlers/health"
	"rentro/internal/handlers/request"
	"rentro/internal/handlers/user"
	"rentro/shared/constant"
	"rentro/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Request request.Handler
	Booking booking.Handler
	Health  health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	authRole       middleware.AuthRole
	config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	if r.config.Metrics.Enable {
		router.Handle(r.config.Metrics.Path, metrics.Handler())
	}

	if r.config.Server.Env != constant.ServerEnvProduction {
		docs.SwaggerInfo.Host = r.config.Server.Host
		router.Get("/swagger/*", httpSwagger.Handler())
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authRole.APIKey, r.authRole.Auth, r.authRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Request.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, config *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		authRole:       authRole,
		config:         config,
	}
}
