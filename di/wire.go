//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/infras/webhook"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/event"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	adminRepository "hotel/internal/domains/admin/repository"
	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	customerService "hotel/internal/domains/customer/service"
	dashboardService "hotel/internal/domains/dashboard/service"
	notificationService "hotel/internal/domains/notification/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"

	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	bookingHandler "hotel/internal/handlers/booking"
	customerHandler "hotel/internal/handlers/customer"
	dashboardHandler "hotel/internal/handlers/dashboard"
	roomHandler "hotel/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	webhook.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	authDomain,
	provideAvailability,
	customerService.New,
	dashboardService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	customerHandler.New,
	dashboardHandler.New,
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

func InitializeNotifier() *Notifier {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		webhook.New,
		notificationService.New,
		wire.Struct(new(Notifier), "*"),
	)

	return &Notifier{}
}
