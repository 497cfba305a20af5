package withdrawal

import (
	"context"
	"fmt"

	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
)

// Cancel anula un vale (baja lógica). Si el retiro ya fue contabilizado en SAP,
// primero debe anularse allá (movimiento 202); si la anulación SAP falla, el vale
// NO se da de baja y se devuelve ErrSAPReversalFailed.
func (uc *UseCase) Cancel(ctx context.Context, id int64) error {
	w, err := uc.wRepo.GetByID(id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	if !w.CanCancel() {
		return domain.ErrConflict
	}

	if w.SAPStatus == entity.SAPProcessed {
		header, items, err := uc.sapDocuments(w)
		if err != nil {
			return err
		}
		res := uc.delivery.ReverseDelivery(ctx, header, items)
		if !res.Success {
			uc.log.Warn().Int64("withdrawal_id", w.ID).Str("error", res.Error).
				Msg("fallo la anulación SAP; el vale no se da de baja")
			return fmt.Errorf("%w: %s", domain.ErrSAPReversalFailed, res.Error)
		}
		uc.log.Info().Int64("withdrawal_id", w.ID).Str("mat_doc", res.DocumentNumber).
			Msg("movimiento anulado en SAP")
		uc.saveSAPResult(w.ID, entity.SAPNotProcessed, res.DocumentNumber, res.DocumentYear,
			"anulado por baja del vale")
	}

	return uc.txRunner.Run(ctx, func(wRepo repository.WithdrawalRepository, _ repository.MaterialRepository) error {
		return wRepo.Deactivate(w.ID)
	})
}
