package dto

import "time"

// CreateStockItemRequest entrada para crear un artículo. Quantity ausente equivale a 0.
type CreateStockItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// UpdateStockItemRequest entrada para actualizar la cantidad. Nil = solo se refresca updatedAt.
type UpdateStockItemRequest struct {
	Quantity *int `json:"quantity"`
}

// StockItemResponse salida de un artículo.
type StockItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StockListResponse {success:true, items:[...]}.
type StockListResponse struct {
	Success bool                `json:"success"`
	Items   []StockItemResponse `json:"items"`
}

// StockItemEnvelope {success:true, message, item}.
type StockItemEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Item    StockItemResponse `json:"item"`
}
