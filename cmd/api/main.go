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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/application/analytics"
	"github.com/jhoicas/Vivero-api/internal/domain/stats"
	infrapdf "github.com/jhoicas/Vivero-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Vivero-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Vivero-api/internal/interfaces/http"
	"github.com/jhoicas/Vivero-api/pkg/config"
	"github.com/jhoicas/Vivero-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	engine, err := statsEngine(cfg.Stats)
	if err != nil {
		log.Fatal().Err(err).Msg("parámetros del motor de estadísticas")
	}

	orderRepo := postgres.NewOrderRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)

	statsUC := analytics.NewStatsUseCase(orderRepo, returnRepo, engine)
	reportGen := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := analytics.NewReportUseCase(statsUC, reportGen)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vivero API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StatsUC:  statsUC,
		ReportUC: reportUC,
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

// statsEngine arma el motor con los parámetros configurados. La zona horaria
// inválida es error de arranque, no un fallback silencioso.
func statsEngine(cfg config.StatsConfig) (*stats.Engine, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	params := stats.Params{
		DeliveryFee:    decimal.NewFromFloat(cfg.DeliveryFee),
		UnitCost:       decimal.NewFromFloat(cfg.UnitCost),
		CommissionRate: decimal.NewFromFloat(cfg.CommissionRate),
		ReturnCost:     decimal.NewFromFloat(cfg.ReturnCost),
		Location:       loc,
	}
	return stats.NewEngine(params), nil
}
