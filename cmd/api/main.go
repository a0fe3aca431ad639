package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Ovos-api/internal/bootstrap"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Ovos-api/internal/interfaces/http"
	"github.com/jhoicas/Ovos-api/pkg/config"
	"github.com/jhoicas/Ovos-api/pkg/jwt"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("timezone", cfg.App.Location.String()).
		Msg("iniciando aplicación")

	tokens, err := jwt.New(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET y JWT_ISSUER son obligatorios")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	svc, err := bootstrap.NewServices(backend, cfg.Stock, cfg.App.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("construir servicios")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:       svc.Stock,
		Entries:     svc.Entries,
		Losses:      svc.Losses,
		Consumption: svc.Consumption,
		Sales:       svc.Sales,
		Expenses:    svc.Expenses,
		Prices:      svc.Prices,
		Summaries:   svc.Summaries,
		Tokens:      tokens,
		Log:         log,
	})

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

	log.Info().Msg("aplicación detenida")
}
