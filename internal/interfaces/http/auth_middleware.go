package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/pkg/jwt"
)

// LocalAdminID key de c.Locals con el id del admin autenticado.
const LocalAdminID = "admin_id"

type adminIDKey struct{}

// WithAdminID devuelve un contexto hijo con el id del admin.
func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey{}, adminID)
}

// AdminIDFromContext lee el id del admin puesto por AuthMiddleware.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey{}).(string)
	return id, ok && id != ""
}

// AuthMiddleware valida el Bearer Token JWT y adjunta el admin id a c.Locals y al UserContext.
// Sin token responde 403; token inválido o expirado, 401. Solo confía en la firma: no consulta el almacén.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.SplitN(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return rejectAuth(c, domain.ErrUnauthenticated)
		}
		if !strings.EqualFold(parts[0], "Bearer") {
			return rejectAuth(c, domain.ErrInvalidToken)
		}
		adminID, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return rejectAuth(c, domain.ErrInvalidToken)
		}
		c.Locals(LocalAdminID, adminID)
		c.SetUserContext(WithAdminID(c.UserContext(), adminID))
		return c.Next()
	}
}

// GetAdminID devuelve el admin id del contexto (después del middleware de auth).
func GetAdminID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminID).(string)
	return s
}

func rejectAuth(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError("No token provided", nil))
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("Invalid token", nil))
}
