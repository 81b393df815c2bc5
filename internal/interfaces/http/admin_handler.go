package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// AdminHandler maneja login y creación de administradores.
type AdminHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAdminHandler construye el handler de administradores.
func NewAdminHandler(uc *auth.AuthUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Iniciar sesión de administrador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminCredentialsRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var in dto.AdminCredentialsRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}
	token, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Usuario inexistente y contraseña incorrecta comparten respuesta.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return clientError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return storeFailure(c, h.log, "Login error", err)
	}
	return c.JSON(dto.LoginResponse{Success: true, Token: token, Message: "Login successful"})
}

// Create godoc
// @Summary      Crear administrador (bootstrap, sin autenticación)
// @Description  Pensado para ejecutarse una vez por despliegue. No está protegido.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminCredentialsRequest  true  "username, password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/create [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var in dto.AdminCredentialsRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.CreateAdmin(c.UserContext(), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return clientError(c, fiber.StatusBadRequest, "Admin already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return clientError(c, fiber.StatusBadRequest, "Username and password are required")
		}
		return storeFailure(c, h.log, "Error creating admin", err)
	}
	h.log.Warn().Str("username", in.Username).Msg("administrador creado vía endpoint sin autenticación")
	return c.JSON(dto.NewMessage("Admin created successfully"))
}
