package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// parseBody decodifica el JSON del cuerpo; un cuerpo vacío deja in con sus valores cero.
func parseBody(c *fiber.Ctx, in interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(in)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("Invalid request body", nil))
}

func clientError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.NewError(message, nil))
}

// storeFailure registra el error y lo devuelve tal cual en el campo error (500).
func storeFailure(c *fiber.Ctx, log *logger.Logger, message string, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError(message, err))
}

// errorHandler convierte cualquier error no atendido (incluidos los de Fiber y los pánicos recuperados)
// en el envelope {success:false, message}.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(code).JSON(dto.NewError(message, nil))
	}
}
