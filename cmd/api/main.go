package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/stock-movements-api/docs"
	appanalytics "github.com/jhoicas/stock-movements-api/internal/application/analytics"
	"github.com/jhoicas/stock-movements-api/internal/application/inventory"
	"github.com/jhoicas/stock-movements-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/stock-movements-api/internal/infrastructure/kafka"
	infraredis "github.com/jhoicas/stock-movements-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/stock-movements-api/internal/interfaces/http"
	"github.com/jhoicas/stock-movements-api/internal/scheduler"
	"github.com/jhoicas/stock-movements-api/pkg/config"
	"github.com/jhoicas/stock-movements-api/pkg/logger"
	"github.com/jhoicas/stock-movements-api/pkg/tracing"
)

const swaggerFile = "./docs/swagger.json"

var version = "dev"

// @title           Stock Movements API
// @version         1.0
// @description     Movimientos de inventario por bodega: recepciones, entregas, traslados y ajustes con libro de movimientos.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("version", version).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.Otel.Endpoint,
		URLPath:     cfg.Otel.URLPath,
		Insecure:    cfg.Otel.Insecure,
		ServiceName: cfg.Otel.ServiceName,
		Version:     version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	// Candado de validación: Redis si está configurado (varias réplicas), si no uno local.
	var locker inventory.DocumentLocker = inventory.NewLocalLocker()
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		locker = infraredis.NewDocumentLocker(client, cfg.Redis.LockTTL, log.Component("locker"))
	}

	var publisher inventory.LedgerPublisher = inventory.NopPublisher{}
	var kafkaPublisher *infrakafka.LedgerPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = infrakafka.NewLedgerPublisher(
			infrakafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			log.Component("kafka"),
		)
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de asientos habilitada")
	}

	engine := inventory.NewMovementEngine()
	documentUC := inventory.NewDocumentUseCase(store.txRunner, store.documents, store.products, store.warehouses)
	workflow := inventory.NewDocumentWorkflow(store.txRunner, engine, locker, publisher, log.Component("workflow"))
	adjustmentUC := inventory.NewAdjustmentUseCase(
		store.txRunner, engine, store.adjustments, store.products, store.warehouses,
		publisher, log.Component("adjustments"),
	)
	stockQuery := inventory.NewStockQueryUseCase(store.txRunner, store.stock, store.ledger)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.levels)
	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Movements API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:   usecase.NewWarehouseUseCase(store.warehouses),
		CategoryUC:    usecase.NewCategoryUseCase(store.categories),
		ProductUC:     usecase.NewProductUseCase(store.products, store.categories),
		DocumentUC:    documentUC,
		Workflow:      workflow,
		AdjustmentUC:  adjustmentUC,
		StockQuery:    stockQuery,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(scheduler.Config{
			LowStockSpec:  cfg.Scheduler.LowStockSpec,
			ReconcileSpec: cfg.Scheduler.ReconcileSpec,
			RunTimeout:    cfg.Scheduler.RunTimeout,
		}, replenishmentUC, stockQuery, log.Component("scheduler"))
		if err := jobs.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar tareas programadas")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if jobs != nil {
		jobs.Stop()
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador kafka")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
