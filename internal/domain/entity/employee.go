package entity

import "time"

// Employee representa un empleado habilitado para retirar materiales.
// Legajo es el número de personal que SAP espera en I_CAB (con relleno de ceros a 8).
type Employee struct {
	ID           int64
	Legajo       int64
	Name         string
	CostCenterID int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
