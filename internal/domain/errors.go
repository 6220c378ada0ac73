package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores del punto de venta.
var (
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrDeliveryIncomplete = errors.New("domicilio incompleto: se requiere nombre, dirección y costo de envío")
	ErrFinalizeInProgress = errors.New("ya hay una venta en proceso de cierre")
	ErrCartLocked         = errors.New("el carrito está bloqueado mientras se cierra la venta")
	ErrPartialCommit      = errors.New("la venta quedó registrada parcialmente")
	ErrOffline            = errors.New("sin conexión a internet")
)
