package config

import (
	"time"
	_ "time/tzdata"

	"finance-service/src/internal/delivery/http"
	"finance-service/src/internal/delivery/http/middleware"
	"finance-service/src/internal/delivery/http/route"
	"finance-service/src/internal/gateway/messaging"
	"finance-service/src/internal/repository"
	"finance-service/src/internal/usecase"
	"finance-service/src/pkg/databases/docstore"
	"finance-service/src/pkg/kafka"
	"finance-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB       docstore.Store
	App      *fiber.App
	Log      log.Log
	Validate *validator.Validate
	Config   *viper.Viper
	Producer kafka.Producer
	Redis    redis.UniversalClient
	Async    *asynq.ServeMux
}

type UseCases struct {
	Ledger         *usecase.LedgerUseCase
	Report         *usecase.ReportUseCase
	Export         *usecase.ExportUseCase
	Reconciliation *usecase.ReconciliationUseCase
}

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// NewLocation loads app.timezone, falling back to the host zone.
func NewLocation(config *viper.Viper, log log.Log) *time.Location {
	name := config.GetString("app.timezone")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error("config", err.Error(), "NewLocation", name)
		return time.Local
	}
	return loc
}

// NewUseCases wires repositories and use cases over db. redisClient may be
// nil, in which case reports are computed on every call.
func NewUseCases(config *BootstrapConfig) *UseCases {
	ledgerRepository := repository.NewLedgerRepository(config.DB)
	transactionRepository := repository.NewTransactionRepository(config.DB)
	driverRepository := repository.NewDriverRepository(config.DB)
	reservationRepository := repository.NewReservationRepository(config.DB)
	intentRepository := repository.NewIntentRepository(config.DB)

	ledgerProducer := messaging.NewLedgerProducer(config.Producer, config.Log, NewKafkaTopics(config.Config))

	var cache usecase.ReportCache
	if config.Redis != nil && config.Config.GetBool("report.cache.enabled") {
		cache = repository.NewReportCacheRepository(config.Redis, config.Config.GetDuration("report.cache.ttl"))
	}

	ledgerUseCase := usecase.NewLedgerUseCase(
		config.Log,
		config.Validate,
		config.DB,
		ledgerRepository,
		transactionRepository,
		driverRepository,
		reservationRepository,
		intentRepository,
		ledgerProducer,
	)
	reportUseCase := usecase.NewReportUseCase(config.Log, ledgerRepository, cache, NewLocation(config.Config, config.Log))
	exportUseCase := usecase.NewExportUseCase(config.Log, reportUseCase, ledgerRepository)
	reconciliationUseCase := usecase.NewReconciliationUseCase(
		config.Log,
		driverRepository,
		ledgerRepository,
		intentRepository,
		ledgerUseCase,
		ledgerProducer,
	)

	return &UseCases{
		Ledger:         ledgerUseCase,
		Report:         reportUseCase,
		Export:         exportUseCase,
		Reconciliation: reconciliationUseCase,
	}
}

func Bootstrap(config *BootstrapConfig) *UseCases {
	useCases := NewUseCases(config)

	// setup controller
	financeController := http.NewFinanceController(useCases.Ledger, config.Log)
	reportController := http.NewReportController(useCases.Report, useCases.Export, useCases.Reconciliation, config.Log)
	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)

	routeConfig := route.RouteConfig{
		App:               config.App,
		FinanceController: financeController,
		ReportController:  reportController,
		AuthMiddleware:    authMiddleware,
	}
	routeConfig.Setup()

	if config.Async != nil {
		config.Async.HandleFunc(usecase.TypeReconcileDrivers, useCases.Reconciliation.HandleReconcileDrivers)
		config.Async.HandleFunc(usecase.TypeReplayIntents, useCases.Reconciliation.HandleReplayIntents)
	}
	return useCases
}
