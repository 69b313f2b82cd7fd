package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrReferentialConflict = errors.New("el recurso tiene referencias activas")
	ErrPartialPosting      = errors.New("consumo registrado parcialmente")
)
