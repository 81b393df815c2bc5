package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET no definido: se usa el secreto por defecto, solo apto para desarrollo local")
	}

	var (
		stockRepo repository.StockItemRepository
		adminRepo repository.AdminRepository
		closeDB   = func() {}
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		stockRepo = memory.NewStockItemRepository()
		adminRepo = memory.NewAdminRepository()
	default:
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones PostgreSQL")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		closeDB = pool.Close
		stockRepo = postgres.NewStockItemRepository(pool)
		adminRepo = postgres.NewAdminRepository(pool)
	}

	stockUC := usecase.NewStockUseCase(stockRepo)
	authUC := auth.NewAuthUseCase(adminRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		StockUC:   stockUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
	})

	log.Info().
		Str("addr", cfg.HTTP.Addr()).
		Msg(`para crear el primer administrador: POST /api/admin/create con {"username":"admin","password":"..."}`)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	err = serve(app, cfg.HTTP.Addr(), quit, log)
	closeDB()
	if err != nil {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// serve escucha en addr hasta que llega una señal por quit o Listen falla (p. ej. puerto
// ocupado). Tras la señal apaga el servidor con un límite de 10 s.
func serve(app *fiber.App, addr string, quit <-chan os.Signal, log *logger.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err == nil {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
