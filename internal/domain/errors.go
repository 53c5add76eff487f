package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrInvalidBillDate = errors.New("fecha de factura inválida")
	ErrInvalidFromDate = errors.New("fecha de inicio inválida")
	ErrInvalidRate     = errors.New("tarifa inválida")
)
