// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en los tests; replica las
// restricciones que el esquema PostgreSQL impone (nombre único sin mayúsculas, quantity >= 0).
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// Errores de restricción equivalentes a los CHECK del esquema SQL.
var (
	ErrNegativeQuantity = errors.New("violates check constraint stock_items_quantity_check: quantity must be >= 0")
	ErrEmptyName        = errors.New("violates check constraint stock_items_name_check: name must not be empty")
)

// StockItemRepo guarda los artículos en orden de inserción, con índice por nombre en minúsculas.
type StockItemRepo struct {
	mu     sync.RWMutex
	items  []*entity.StockItem
	byName map[string]string // lower(nombre) -> id
	lower  cases.Caser
}

// NewStockItemRepository construye el repositorio vacío.
func NewStockItemRepository() *StockItemRepo {
	return &StockItemRepo{
		byName: make(map[string]string),
		lower:  cases.Lower(language.Und),
	}
}

// key equivale a lower(name) del índice único en PostgreSQL: solo minúsculas, sin
// plegado completo (Straße y STRASSE son nombres distintos).
func (r *StockItemRepo) key(name string) string {
	// cases.Caser no es seguro para uso concurrente; se llama siempre con r.mu tomado.
	return r.lower.String(name)
}

// ListOrderedByName devuelve copias ordenadas por nombre; empates por orden de inserción.
func (r *StockItemRepo) ListOrderedByName(ctx context.Context) ([]*entity.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	list := make([]*entity.StockItem, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		list = append(list, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// FindByNameFold busca un artículo cuyo nombre coincida sin distinguir mayúsculas.
func (r *StockItemRepo) FindByNameFold(ctx context.Context, name string) (*entity.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[r.key(name)]
	if !ok {
		return nil, nil
	}
	_, it := r.find(id)
	cp := *it
	return &cp, nil
}

// Create inserta el artículo; el índice de nombre hace de restricción única.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.Name == "" {
		return fmt.Errorf("insert stock item: %w", ErrEmptyName)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("insert stock item: %w", ErrNegativeQuantity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(item.Name)
	if _, exists := r.byName[k]; exists {
		return domain.ErrDuplicate
	}
	cp := *item
	r.items = append(r.items, &cp)
	r.byName[k] = cp.ID
	return nil
}

// UpdateQuantity fija quantity (si no es nil) y updated_at bajo un único lock.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, id string, quantity *int, updatedAt time.Time) (*entity.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if quantity != nil && *quantity < 0 {
		return nil, fmt.Errorf("update stock item: %w", ErrNegativeQuantity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, it := r.find(id)
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if quantity != nil {
		it.Quantity = *quantity
	}
	it.UpdatedAt = updatedAt
	cp := *it
	return &cp, nil
}

// Delete elimina por id; ErrNotFound si no existía.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, it := r.find(id)
	if it == nil {
		return domain.ErrNotFound
	}
	delete(r.byName, r.key(it.Name))
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *StockItemRepo) find(id string) (int, *entity.StockItem) {
	for i, it := range r.items {
		if it.ID == id {
			return i, it
		}
	}
	return -1, nil
}
