package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// StockUseCase casos de uso CRUD para artículos de inventario.
type StockUseCase struct {
	repo repository.StockItemRepository
	now  func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockItemRepository) *StockUseCase {
	return &StockUseCase{repo: repo, now: time.Now}
}

// List devuelve todos los artículos ordenados por nombre ascendente. Nunca devuelve nil sin error.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockItemResponse, error) {
	list, err := uc.repo.ListOrderedByName(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, toStockItemResponse(it))
	}
	return items, nil
}

// Create crea un artículo. El nombre se recorta; si ya existe uno igual sin distinguir
// mayúsculas devuelve ErrDuplicate. Quantity no se valida aquí: el almacén impone quantity >= 0.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	name := entity.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.FindByNameFold(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.timestamp()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toStockItemResponse(item)
	return &out, nil
}

// UpdateQuantity fija la cantidad y refresca updatedAt en una sola operación del almacén.
// Un id inexistente o mal formado devuelve ErrNotFound. El nombre no se modifica.
func (uc *StockUseCase) UpdateQuantity(ctx context.Context, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	if !isValidID(id) {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.UpdateQuantity(ctx, id, in.Quantity, uc.timestamp())
	if err != nil {
		return nil, err
	}
	out := toStockItemResponse(item)
	return &out, nil
}

// Delete elimina un artículo por id en una sola operación; ErrNotFound si no existía.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// timestamp devuelve la hora actual en UTC con la precisión de TIMESTAMPTZ (microsegundos),
// para que la respuesta coincida con lo que después devuelve el almacén.
func (uc *StockUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
