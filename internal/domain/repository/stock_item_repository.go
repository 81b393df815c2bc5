package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem (DIP).
//
// Convenciones de los adaptadores:
//   - Find* devuelve (nil, nil) si no existe.
//   - Create devuelve domain.ErrDuplicate si el nombre ya existe (sin distinguir mayúsculas).
//   - UpdateQuantity y Delete operan en una sola sentencia y devuelven domain.ErrNotFound si el id no existe.
type StockItemRepository interface {
	ListOrderedByName(ctx context.Context) ([]*entity.StockItem, error)
	FindByNameFold(ctx context.Context, name string) (*entity.StockItem, error)
	Create(ctx context.Context, item *entity.StockItem) error
	// UpdateQuantity fija quantity (si no es nil) y updated_at; devuelve el registro tras el update.
	UpdateQuantity(ctx context.Context, id string, quantity *int, updatedAt time.Time) (*entity.StockItem, error)
	Delete(ctx context.Context, id string) error
}
