//go:build wireinject
// +build wireinject

package di

import (
	"rentro/config"
	"rentro/infras/jwt"
	"rentro/permissions"
	"rentro/shared/cache"
	"rentro/transport/http"
	"rentro/transport/http/middleware"
	"rentro/transport/http/router"

	authService "rentro/internal/domains/auth/service"
	bookingService "rentro/internal/domains/booking/service"
	requestRepository "rentro/internal/domains/request/repository"
	requestService "rentro/internal/domains/request/service"
	userRepository "rentro/internal/domains/user/repository"
	userService "rentro/internal/domains/user/service"
	authHandler "rentro/internal/handlers/auth"
	bookingHandler "rentro/internal/handlers/booking"
	healthHandler "rentro/internal/handlers/health"
	requestHandler "rentro/internal/handlers/request"
	userHandler "rentro/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	providePostgres,
	provideOtel,
	provideRedis,
	provideKafka,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var requestDomain = wire.NewSet(
	requestRepository.New,
	requestService.New,
)

var bookingDomain = wire.NewSet(
	provideBookingStore,
	bookingService.OptionsFromConfig,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	requestDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	requestHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
