package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cualquier otro error que llegue al borde HTTP se trata como error del almacén.
var (
	ErrUnauthenticated    = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
)
