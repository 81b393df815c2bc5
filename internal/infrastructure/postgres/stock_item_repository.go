package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, quantity, created_at, updated_at`

// StockItemRepo implementación del puerto StockItemRepository sobre PostgreSQL.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// ListOrderedByName lista todos los artículos por nombre ascendente (collation por defecto).
func (r *StockItemRepo) ListOrderedByName(ctx context.Context) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items ORDER BY name ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockItem, 0)
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// FindByNameFold busca por nombre sin distinguir mayúsculas (usa el índice lower(name)).
func (r *StockItemRepo) FindByNameFold(ctx context.Context, name string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE lower(name) = lower($1) LIMIT 1`
	it, err := scanStockItem(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by name: %w", err)
	}
	return it, nil
}

// Create persiste un artículo nuevo. La violación del índice único se traduce a ErrDuplicate.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, name, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, item.ID, item.Name, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// UpdateQuantity fija quantity (NULL conserva el valor) y updated_at en una sola sentencia.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, id string, quantity *int, updatedAt time.Time) (*entity.StockItem, error) {
	query := `
		UPDATE stock_items SET quantity = COALESCE($2::integer, quantity), updated_at = $3
		WHERE id = $1
		RETURNING ` + stockItemColumns
	it, err := scanStockItem(r.q.QueryRow(ctx, query, id, quantity, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update stock item: %w", err)
	}
	return it, nil
}

// Delete elimina por id; ErrNotFound si no había fila.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	if err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
