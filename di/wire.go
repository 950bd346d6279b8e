//go:build wireinject
// +build wireinject

package di

import (
	"tourism/config"
	"tourism/infras/jwt"
	"tourism/infras/kafka"
	"tourism/infras/otel"
	"tourism/infras/paymongo"
	"tourism/infras/postgres"
	"tourism/infras/redis"
	"tourism/infras/s3"
	"tourism/permissions"
	"tourism/shared/cache"
	gRepo "tourism/shared/repository"
	"tourism/transport/http"
	"tourism/transport/http/middleware"
	"tourism/transport/http/router"
	"tourism/transport/worker"

	authService "tourism/internal/domains/auth/service"
	boatRepository "tourism/internal/domains/boat/repository"
	boatService "tourism/internal/domains/boat/service"
	bookingRepository "tourism/internal/domains/booking/repository"
	bookingService "tourism/internal/domains/booking/service"
	historyEvent "tourism/internal/domains/bookinghistory/event"
	historyRepository "tourism/internal/domains/bookinghistory/repository"
	historyService "tourism/internal/domains/bookinghistory/service"
	feeRepository "tourism/internal/domains/entrancefee/repository"
	feeService "tourism/internal/domains/entrancefee/service"
	establishmentRepository "tourism/internal/domains/establishment/repository"
	establishmentService "tourism/internal/domains/establishment/service"
	paymentRepository "tourism/internal/domains/payment/repository"
	paymentService "tourism/internal/domains/payment/service"
	unitRepository "tourism/internal/domains/unit/repository"
	unitService "tourism/internal/domains/unit/service"
	userRepository "tourism/internal/domains/user/repository"
	userService "tourism/internal/domains/user/service"

	authHandler "tourism/internal/handlers/auth"
	boatHandler "tourism/internal/handlers/boat"
	bookingHandler "tourism/internal/handlers/booking"
	feeHandler "tourism/internal/handlers/entrancefee"
	establishmentHandler "tourism/internal/handlers/establishment"
	paymentHandler "tourism/internal/handlers/payment"
	unitHandler "tourism/internal/handlers/unit"
	userHandler "tourism/internal/handlers/user"

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
	paymongo.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	establishmentRepository.New,
	establishmentService.New,
	feeRepository.New,
	feeService.New,
	unitRepository.New,
	unitService.New,
	boatRepository.New,
	boatService.New,
)

var historyDomain = wire.NewSet(
	historyRepository.New,
	historyService.New,
	historyEvent.NewPublisher,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	userDomain,
	catalogDomain,
	historyDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	establishmentHandler.New,
	feeHandler.New,
	unitHandler.New,
	boatHandler.New,
	bookingHandler.New,
	paymentHandler.New,
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

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		historyRepository.New,
		historyService.New,
		worker.New,
	)

	return &worker.Worker{}
}
