// Package catalog expone lecturas de los maestros locales (empleados,
// centros de costo, pañoles y materiales) para los combos de la UI.
package catalog

import (
	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
)

// UseCase lecturas de catálogo.
type UseCase struct {
	empRepo repository.EmployeeRepository
	ccRepo  repository.CostCenterRepository
	whRepo  repository.WarehouseRepository
	matRepo repository.MaterialRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	empRepo repository.EmployeeRepository,
	ccRepo repository.CostCenterRepository,
	whRepo repository.WarehouseRepository,
	matRepo repository.MaterialRepository,
) *UseCase {
	return &UseCase{empRepo: empRepo, ccRepo: ccRepo, whRepo: whRepo, matRepo: matRepo}
}

// SearchEmployees busca empleados activos por nombre o legajo.
func (uc *UseCase) SearchEmployees(query string, limit int) ([]dto.EmployeeResponse, error) {
	emps, err := uc.empRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		out = append(out, dto.EmployeeResponse{
			ID: e.ID, Legajo: e.Legajo, Name: e.Name, CostCenterID: e.CostCenterID,
		})
	}
	return out, nil
}

// ListCostCenters devuelve los centros de costo activos.
func (uc *UseCase) ListCostCenters() ([]dto.CostCenterResponse, error) {
	ccs, err := uc.ccRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CostCenterResponse, 0, len(ccs))
	for _, cc := range ccs {
		out = append(out, dto.CostCenterResponse{ID: cc.ID, Code: cc.Code, Description: cc.Description})
	}
	return out, nil
}

// ListWarehouses devuelve los pañoles activos.
func (uc *UseCase) ListWarehouses() ([]dto.WarehouseResponse, error) {
	whs, err := uc.whRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(whs))
	for _, wh := range whs {
		out = append(out, dto.WarehouseResponse{ID: wh.ID, Code: wh.Code, Plant: wh.Plant, Name: wh.Name})
	}
	return out, nil
}

// SearchMaterials busca materiales habilitados para un centro de costo.
func (uc *UseCase) SearchMaterials(query string, costCenterID int64, limit int) ([]dto.MaterialStockResponse, error) {
	mats, err := uc.matRepo.Search(query, costCenterID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialStockResponse, 0, len(mats))
	for _, m := range mats {
		out = append(out, dto.MaterialStockResponse{
			MaterialID:  m.ID,
			Code:        m.Code,
			Description: m.Description,
			UnitMeasure: m.UnitMeasure,
		})
	}
	return out, nil
}
