package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo credenciales de administrador indexadas por username exacto.
type AdminRepo struct {
	mu     sync.RWMutex
	admins map[string]entity.Admin
}

// NewAdminRepository construye el repositorio vacío.
func NewAdminRepository() *AdminRepo {
	return &AdminRepo{admins: make(map[string]entity.Admin)}
}

// FindByUsername busca por username exacto (distingue mayúsculas).
func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// Create inserta el admin; ErrDuplicate si el username ya existe.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[admin.Username]; exists {
		return domain.ErrDuplicate
	}
	r.admins[admin.Username] = *admin
	return nil
}
