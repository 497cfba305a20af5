package dto

// StockQueryRequest entrada para consultar stock en vivo contra SAP.
type StockQueryRequest struct {
	Query       string `query:"q" validate:"omitempty,max=100"`
	WarehouseID int64  `query:"warehouse_id" validate:"required,gt=0"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// MaterialStockResponse material del catálogo con su stock SAP.
type MaterialStockResponse struct {
	MaterialID  int64  `json:"material_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	UnitMeasure string `json:"unit_measure"`
	Stock       int    `json:"stock"`
}

// EmployeeResponse empleado habilitado para retirar.
type EmployeeResponse struct {
	ID           int64  `json:"id"`
	Legajo       int64  `json:"legajo"`
	Name         string `json:"name"`
	CostCenterID int64  `json:"cost_center_id"`
}

// CostCenterResponse centro de costo SAP.
type CostCenterResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// WarehouseResponse pañol disponible.
type WarehouseResponse struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Plant string `json:"plant"`
	Name  string `json:"name"`
}
