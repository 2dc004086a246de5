package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las capas superiores agregan el motivo con fmt.Errorf("%w: ...") y comparan con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrEmptyDocument     = errors.New("el documento no tiene líneas")
)
