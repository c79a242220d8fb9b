//go:build wireinject
// +build wireinject

package di

import (
	"carhive/config"
	"carhive/infras/jwt"
	"carhive/infras/kafka"
	"carhive/infras/otel"
	"carhive/infras/postgres"
	"carhive/infras/redis"
	"carhive/infras/s3"
	"carhive/permissions"
	"carhive/shared/cache"
	"carhive/transport/http"
	"carhive/transport/http/middleware"
	"carhive/transport/http/router"

	"github.com/google/wire"

	authService "carhive/internal/domains/auth/service"
	bookingRepository "carhive/internal/domains/booking/repository"
	bookingService "carhive/internal/domains/booking/service"
	carRepository "carhive/internal/domains/car/repository"
	carService "carhive/internal/domains/car/service"
	reviewRepository "carhive/internal/domains/review/repository"
	reviewService "carhive/internal/domains/review/service"
	userRepository "carhive/internal/domains/user/repository"
	userService "carhive/internal/domains/user/service"
	authHandler "carhive/internal/handlers/auth"
	bookingHandler "carhive/internal/handlers/booking"
	carHandler "carhive/internal/handlers/car"
	reviewHandler "carhive/internal/handlers/review"
	userHandler "carhive/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var carDomain = wire.NewSet(
	carRepository.New,
	carService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	carDomain,
	bookingDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	carHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
