package entity

import (
	"strings"
	"time"
)

// StockItem representa un artículo del inventario público.
// El nombre es único sin distinguir mayúsculas; Quantity nunca es negativa (lo garantiza el almacén).
type StockItem struct {
	ID        string
	Name      string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeName recorta espacios alrededor del nombre.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
