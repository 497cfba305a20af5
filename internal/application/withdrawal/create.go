package withdrawal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
)

// Create valida y registra un vale pendiente con sus items en una transacción.
// Cada material debe estar activo y habilitado para el centro de costo del empleado.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	emp, err := uc.empRepo.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, fmt.Errorf("%w: empleado inexistente o inactivo", domain.ErrInvalidInput)
	}
	wh, err := uc.whRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active {
		return nil, fmt.Errorf("%w: pañol inexistente o inactivo", domain.ErrInvalidInput)
	}

	w := &entity.Withdrawal{
		EmployeeID:   emp.ID,
		CostCenterID: emp.CostCenterID,
		WarehouseID:  wh.ID,
		RequestedBy:  userID,
		Status:       entity.WithdrawalPending,
		Notes:        in.Notes,
		SAPStatus:    entity.SAPNotProcessed,
		Active:       true,
	}
	for _, item := range in.Items {
		qty, err := decimal.NewFromString(item.Quantity)
		if err != nil || !qty.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad inválida para material %d", domain.ErrInvalidInput, item.MaterialID)
		}
		w.Items = append(w.Items, entity.WithdrawalItem{
			MaterialID:   item.MaterialID,
			RequestedQty: qty,
			DeliveredQty: decimal.Zero,
		})
	}

	err = uc.txRunner.Run(ctx, func(wRepo repository.WithdrawalRepository, matRepo repository.MaterialRepository) error {
		for _, item := range w.Items {
			mat, err := matRepo.GetByID(item.MaterialID)
			if err != nil {
				return err
			}
			if mat == nil || !mat.Active {
				return fmt.Errorf("%w: material %d inexistente o inactivo", domain.ErrInvalidInput, item.MaterialID)
			}
			allowed, err := matRepo.IsAllowed(mat.ID, emp.CostCenterID)
			if err != nil {
				return err
			}
			if !allowed {
				return fmt.Errorf("%w: %s", domain.ErrMaterialNotAllowed, mat.Code)
			}
		}
		return wRepo.Create(w)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("withdrawal_id", w.ID).Int64("employee_id", emp.ID).
		Int("items", len(w.Items)).Msg("vale de retiro creado")

	return uc.Get(w.ID)
}
