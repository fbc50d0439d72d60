//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"garage/internal"
	"garage/internal/api"
	"garage/internal/controllers"
	"garage/internal/latency"
	"garage/internal/providers"
	"garage/internal/repository"
	"garage/internal/seed"
	"garage/internal/services"
	"garage/internal/storage"
	"garage/internal/store"
	"garage/internal/structures"
)

var persistenceSet = wire.NewSet(
	storage.NewSlotStorage,
	storage.NewKeysFromConfig,
	seed.NewSource,
	seed.NewLoader,
	wire.Bind(new(seed.LoaderInterface), new(*seed.Loader)),
	store.NewStore,
	wire.Bind(new(store.StoreInterface), new(*store.Store)),
)

var repositorySet = wire.NewSet(
	repository.NewIDGenerator,
	repository.NewUserRepository,
	wire.Bind(new(repository.UserRepositoryInterface), new(*repository.UserRepository)),
	repository.NewVehicleRepository,
	wire.Bind(new(repository.VehicleRepositoryInterface), new(*repository.VehicleRepository)),
	repository.NewAppointmentRepository,
	wire.Bind(new(repository.AppointmentRepositoryInterface), new(*repository.AppointmentRepository)),
	repository.NewCatalogRepository,
	wire.Bind(new(repository.CatalogRepositoryInterface), new(*repository.CatalogRepository)),
)

var serviceSet = wire.NewSet(
	latency.NewSimulatorFromConfig,
	wire.Bind(new(latency.SimulatorInterface), new(*latency.Simulator)),
	services.NewTokenIssuer,
	wire.Bind(new(services.TokenIssuerInterface), new(*services.TokenIssuer)),
	services.NewAuthService,
	wire.Bind(new(services.AuthServiceInterface), new(*services.AuthService)),
	api.NewFacade,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRateLimiter,

		persistenceSet,
		repositorySet,
		serviceSet,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}
