package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para Admin (DIP).
// FindByUsername devuelve (nil, nil) si no existe; Create devuelve domain.ErrDuplicate si el username ya existe.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)
	Create(ctx context.Context, admin *entity.Admin) error
}
