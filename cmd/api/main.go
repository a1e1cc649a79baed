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

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/auth"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/settings"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/templates"
	infrapdf "github.com/benyoung8291/fieldflow-core-sub002/internal/infrastructure/pdf"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/benyoung8291/fieldflow-core-sub002/internal/interfaces/http"
	"github.com/benyoung8291/fieldflow-core-sub002/pkg/config"
	"github.com/benyoung8291/fieldflow-core-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	settingsRepo := postgres.NewCompanySettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewGenerator()

	documentUC := documents.NewDocumentUseCase(docRepo, txRunner)
	pdfUC := documents.NewPDFUseCase(docRepo, templateRepo, settingsRepo, pdfGenerator)
	templateUC := templates.NewTemplateUseCase(templateRepo)
	settingsUC := settings.NewSettingsUseCase(settingsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // logo uploads ride inside JSON bodies
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.Docs.SwaggerPath,
		Path:     "docs",
		Title:    "FieldFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		DocumentUC: documentUC,
		PDFUC:      pdfUC,
		TemplateUC: templateUC,
		SettingsUC: settingsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
