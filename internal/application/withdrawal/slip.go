package withdrawal

import (
	"context"
	"fmt"

	"github.com/rioplatense/vsm-api/internal/domain"
)

// Slip genera el comprobante PDF del vale para imprimir en el pañol.
func (uc *UseCase) Slip(ctx context.Context, id int64) ([]byte, error) {
	w, err := uc.wRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}

	emp, err := uc.empRepo.GetByID(w.EmployeeID)
	if err != nil {
		return nil, err
	}
	cc, err := uc.ccRepo.GetByID(w.CostCenterID)
	if err != nil {
		return nil, err
	}
	wh, err := uc.whRepo.GetByID(w.WarehouseID)
	if err != nil {
		return nil, err
	}
	if emp == nil || cc == nil || wh == nil {
		return nil, fmt.Errorf("%w: maestros incompletos para el vale %d", domain.ErrNotFound, id)
	}

	return uc.slip.GenerateSlip(ctx, w, emp, cc, wh)
}
