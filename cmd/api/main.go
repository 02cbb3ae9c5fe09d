package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docregistro/docs"
	"docregistro/internal/config"
	"docregistro/internal/database"
	"docregistro/internal/database/migration"
	"docregistro/internal/generator"
	handlers "docregistro/internal/http/handler"
	"docregistro/internal/http/middleware"
	"docregistro/internal/logging"
	"docregistro/internal/otel"
	"docregistro/internal/repository"
	"docregistro/internal/repository/fixture"
	"docregistro/internal/repository/postgres"
	"docregistro/internal/service"
	"docregistro/internal/storage"
)

// @title Document Registration API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracing_shutdown_failed", map[string]any{"error": err.Error()})
		}
	}()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	gen := generator.New()

	// The catalog lives in Postgres when DB_HOST is set, otherwise in memory.
	var (
		db          *sql.DB
		catalogRepo repository.CatalogRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host, fixture.Definitions()); err != nil {
			log.Fatalf("failed to migrate catalog: %v", err)
		}
		catalogRepo = postgres.NewCatalogPostgres(db, gen)
	} else {
		catalogRepo = fixture.NewCatalogFixture(gen)
	}

	policy, err := service.ParseAssignmentPolicy(cfg.Catalog.AssignmentPolicy)
	if err != nil {
		log.Fatalf("invalid catalog configuration: %v", err)
	}

	docSvc := service.NewDocumentService(store, gen, logger)
	catalogSvc := service.NewCatalogService(catalogRepo, policy)

	app := handlers.NewApp(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, cfg.Location()))
	app.Use(otelfiber.Middleware())
	app.Use(cors.New())
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	deps := handlers.Dependencies{Docs: docSvc, Catalog: catalogSvc}
	if db != nil {
		deps.DB = db
	}
	handlers.RegisterRoutes(app, deps)

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("server_shutdown_failed", map[string]any{"error": err.Error()})
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", map[string]any{
		"addr":             addr,
		"storage_backend":  cfg.Storage.Backend,
		"catalog_backend":  catalogBackend(cfg.Database),
		"assignment_rule":  string(policy),
		"max_upload_bytes": handlers.BodyLimit(),
	})

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func catalogBackend(c config.DatabaseConfig) string {
	if c.Enabled() {
		return "postgres"
	}
	return "fixture"
}
