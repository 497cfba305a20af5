package dto

import "time"

// WithdrawalItemRequest línea de un vale al crearlo.
type WithdrawalItemRequest struct {
	MaterialID int64  `json:"material_id" validate:"required,gt=0"`
	Quantity   string `json:"quantity" validate:"required"` // decimal como string, ej. "2.5"
}

// CreateWithdrawalRequest entrada para crear un vale de retiro.
type CreateWithdrawalRequest struct {
	EmployeeID  int64                   `json:"employee_id" validate:"required,gt=0"`
	WarehouseID int64                   `json:"warehouse_id" validate:"required,gt=0"`
	Notes       string                  `json:"notes" validate:"omitempty,max=500"`
	Items       []WithdrawalItemRequest `json:"items" validate:"required,min=1,dive"`
}

// DeliverItemRequest cantidad entregada por línea al momento de la entrega.
type DeliverItemRequest struct {
	ItemID   int64  `json:"item_id" validate:"required,gt=0"`
	Quantity string `json:"quantity" validate:"required"` // "0" marca la línea como no entregada
}

// DeliverWithdrawalRequest entrada para entregar un vale.
type DeliverWithdrawalRequest struct {
	Items []DeliverItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes string               `json:"notes" validate:"omitempty,max=500"`
}

// RejectWithdrawalRequest entrada para rechazar un vale pendiente.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// WithdrawalItemResponse línea del vale en respuestas.
type WithdrawalItemResponse struct {
	ID           int64  `json:"id"`
	MaterialID   int64  `json:"material_id"`
	MaterialCode string `json:"material_code"`
	Description  string `json:"description"`
	UnitMeasure  string `json:"unit_measure"`
	RequestedQty string `json:"requested_qty"`
	DeliveredQty string `json:"delivered_qty"`
}

// WithdrawalResponse salida de un vale de retiro.
type WithdrawalResponse struct {
	ID          int64                    `json:"id"`
	EmployeeID  int64                    `json:"employee_id"`
	WarehouseID int64                    `json:"warehouse_id"`
	Status      string                   `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	SAPStatus   string                   `json:"sap_status"`
	SAPDocument string                   `json:"sap_document,omitempty"`
	SAPYear     string                   `json:"sap_year,omitempty"`
	SAPMessage  string                   `json:"sap_message,omitempty"`
	DeliveredAt *time.Time               `json:"delivered_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Items       []WithdrawalItemResponse `json:"items,omitempty"`
}

// WithdrawalListResponse página de vales.
type WithdrawalListResponse struct {
	Data []WithdrawalResponse `json:"data"`
	Page PageResponse         `json:"page"`
}
