package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/stock-api/docs"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// AppConfig opciones de la app Fiber.
type AppConfig struct {
	Name         string
	AllowOrigins string
}

// NewApp crea la app Fiber con el parseo genérico: CORS, logging, métricas, recover y
// un ErrorHandler que siempre responde con el envelope JSON. recover va después del
// logging y las métricas para que un panic también quede registrado y contado.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler(log),
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(log))
	app.Use(MetricsMiddleware())
	app.Use(recover.New())
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	StockUC   *usecase.StockUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", MetricsHandler())
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	api := app.Group("/api")
	stockHandler := NewStockHandler(deps.StockUC, deps.Logger)
	adminHandler := NewAdminHandler(deps.AuthUC, deps.Logger)

	// Stock (público)
	api.Get("/stock", stockHandler.List)

	// Admin (público; /create no tiene autenticación, ver DESIGN.md)
	admin := api.Group("/admin")
	admin.Post("/login", adminHandler.Login)
	admin.Post("/create", adminHandler.Create)

	// Stock (protegido, requiere Bearer Token)
	requireAdmin := AuthMiddleware(deps.JWTSecret)
	api.Post("/stock", requireAdmin, stockHandler.Create)
	api.Put("/stock/:id", requireAdmin, stockHandler.Update)
	api.Delete("/stock/:id", requireAdmin, stockHandler.Delete)
}
