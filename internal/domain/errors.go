package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientChange  = errors.New("no hay billetes suficientes para dar el cambio")
	ErrInsufficientPayment = errors.New("el pago no cubre el total de la venta")
	ErrInUse               = errors.New("el recurso está referenciado por otros registros")
	ErrMissingReference    = errors.New("referencia inexistente o inválida")
	ErrStoreUnavailable    = errors.New("almacenamiento no disponible")
)
