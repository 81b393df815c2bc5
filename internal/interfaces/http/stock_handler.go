package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// StockHandler maneja las peticiones HTTP de artículos. List es público; el resto va tras AuthMiddleware.
type StockHandler struct {
	uc  *usecase.StockUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar artículos (público)
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return storeFailure(c, h.log, "Error fetching stock", err)
	}
	return c.JSON(dto.StockListResponse{Success: true, Items: items})
}

// Create godoc
// @Summary      Crear artículo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "name, quantity"
// @Success      200   {object}  dto.StockItemEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return clientError(c, fiber.StatusBadRequest, "Item already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return clientError(c, fiber.StatusBadRequest, "Name is required")
		}
		return storeFailure(c, h.log, "Error adding item", err)
	}
	h.log.Info().Str("admin_id", GetAdminID(c)).Str("item_id", item.ID).Str("name", item.Name).Msg("artículo creado")
	return c.JSON(dto.StockItemEnvelope{Success: true, Message: "Item added successfully", Item: *item})
}

// Update godoc
// @Summary      Actualizar cantidad de un artículo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateStockItemRequest  true  "quantity"
// @Success      200   {object}  dto.StockItemEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := parseBody(c, &in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.UpdateQuantity(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return clientError(c, fiber.StatusNotFound, "Item not found")
		}
		return storeFailure(c, h.log, "Error updating item", err)
	}
	h.log.Info().Str("admin_id", GetAdminID(c)).Str("item_id", item.ID).Int("quantity", item.Quantity).Msg("artículo actualizado")
	return c.JSON(dto.StockItemEnvelope{Success: true, Message: "Item updated successfully", Item: *item})
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return clientError(c, fiber.StatusNotFound, "Item not found")
		}
		return storeFailure(c, h.log, "Error deleting item", err)
	}
	h.log.Info().Str("admin_id", GetAdminID(c)).Str("item_id", id).Msg("artículo eliminado")
	return c.JSON(dto.NewMessage("Item deleted successfully"))
}
