package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del vale de retiro.
const (
	WithdrawalPending   = "pendiente"
	WithdrawalDelivered = "entregado"
	WithdrawalPartial   = "parcial"
	WithdrawalRejected  = "rechazado"
)

// Estados de contabilización en SAP.
const (
	SAPProcessed    = "procesado"
	SAPNotProcessed = "no_procesado"
	SAPError        = "error"
)

// Withdrawal es un vale de retiro de materiales del pañol.
// La entrega local nunca se bloquea por SAP: si la contabilización falla,
// SAPStatus queda en "error" y el vale sigue entregado.
type Withdrawal struct {
	ID           int64
	EmployeeID   int64
	CostCenterID int64
	WarehouseID  int64
	RequestedBy  string // user ID del solicitante
	DeliveredBy  string // user ID del pañolero que entregó
	Status       string // pendiente, entregado, parcial, rechazado
	Notes        string
	SAPStatus    string // procesado, no_procesado, error
	SAPDocument  string // MAT_DOC devuelto por SAP
	SAPYear      string // DOC_YEAR devuelto por SAP
	SAPMessage   string // detalle del último error SAP, si hubo
	DeliveredAt  *time.Time
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []WithdrawalItem
}

// WithdrawalItem línea del vale: material y cantidades pedida/entregada.
type WithdrawalItem struct {
	ID           int64
	WithdrawalID int64
	MaterialID   int64
	RequestedQty decimal.Decimal
	DeliveredQty decimal.Decimal

	Material *Material // poblado en lecturas con join
}

// CanDeliver indica si el vale admite entrega.
func (w *Withdrawal) CanDeliver() bool {
	return w.Active && w.Status == WithdrawalPending
}

// CanCancel indica si el vale admite anulación (baja lógica).
func (w *Withdrawal) CanCancel() bool {
	return w.Active
}
