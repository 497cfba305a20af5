package entity

import "time"

// Warehouse representa un pañol o almacén SAP.
// Code es el almacén (LGORT) y Plant el centro (WERKS) que espera el RFC.
type Warehouse struct {
	ID        int64
	Code      string // LGORT, ej. "PA01"
	Plant     string // WERKS, ej. "1000"
	Name      string
	Company   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
