package entity

import "time"

// CostCenter centro de costo SAP (KOSTL) al que se imputan los retiros.
type CostCenter struct {
	ID          int64
	Code        string // KOSTL, ej. "CC100200"
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
