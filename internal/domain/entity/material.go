package entity

import "time"

// Material representa un material retirable del pañol, espejo del maestro SAP.
// Code es el código de material (MATNR) sin relleno de ceros.
type Material struct {
	ID          int64
	Code        string
	Description string
	SAPClass    string // clase de material en SAP (ej. ZHER herramientas, ZEPP elementos de protección)
	UnitMeasure string
	WarehouseID int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
