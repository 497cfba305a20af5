package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrWithdrawalClosed   = errors.New("el vale ya no está pendiente")
	ErrMaterialNotAllowed = errors.New("material no habilitado para el centro de costo")
	ErrSAPReversalFailed  = errors.New("no se pudo anular el documento de material en SAP")
)
