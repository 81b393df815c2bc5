package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador de persistencia para administradores.
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// FindByUsername obtiene un admin por username exacto.
func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRow(ctx, `SELECT id, username, password FROM admins WHERE username = $1`, username).
		Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &a, nil
}

// Create persiste un admin; username duplicado -> ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	_, err := r.q.Exec(ctx, `INSERT INTO admins (id, username, password) VALUES ($1, $2, $3)`,
		admin.ID, admin.Username, admin.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
