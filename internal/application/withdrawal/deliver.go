package withdrawal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
)

// Deliver entrega un vale pendiente: persiste las cantidades entregadas y luego
// contabiliza el movimiento 201 en SAP. La entrega local nunca se revierte por un
// fallo SAP; el vale queda con SAPStatus "error" para reprocesar.
func (uc *UseCase) Deliver(ctx context.Context, userID string, id int64, in dto.DeliverWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	w, err := uc.wRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if !w.CanDeliver() {
		return nil, domain.ErrWithdrawalClosed
	}

	if err := applyDeliveredQuantities(w, in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	w.Status = deliveryStatus(w)
	w.DeliveredBy = userID
	w.DeliveredAt = &now
	if in.Notes != "" {
		w.Notes = in.Notes
	}

	err = uc.txRunner.Run(ctx, func(wRepo repository.WithdrawalRepository, _ repository.MaterialRepository) error {
		return wRepo.Update(w)
	})
	if err != nil {
		return nil, err
	}

	uc.postToSAP(ctx, w)
	return uc.Get(w.ID)
}

// Reject rechaza un vale pendiente sin tocar SAP.
func (uc *UseCase) Reject(ctx context.Context, userID string, id int64, in dto.RejectWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	w, err := uc.wRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if !w.CanDeliver() {
		return nil, domain.ErrWithdrawalClosed
	}

	w.Status = entity.WithdrawalRejected
	w.DeliveredBy = userID
	w.Notes = in.Reason
	err = uc.txRunner.Run(ctx, func(wRepo repository.WithdrawalRepository, _ repository.MaterialRepository) error {
		return wRepo.Update(w)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(w.ID)
}

// applyDeliveredQuantities asigna las cantidades entregadas a los items del vale.
// Cada cantidad debe ser >= 0 y <= la pedida; al menos una debe ser positiva.
func applyDeliveredQuantities(w *entity.Withdrawal, in []dto.DeliverItemRequest) error {
	byID := make(map[int64]*entity.WithdrawalItem, len(w.Items))
	for i := range w.Items {
		byID[w.Items[i].ID] = &w.Items[i]
	}

	anyDelivered := false
	for _, req := range in {
		it, ok := byID[req.ItemID]
		if !ok {
			return fmt.Errorf("%w: item %d no pertenece al vale", domain.ErrInvalidInput, req.ItemID)
		}
		qty, err := decimal.NewFromString(req.Quantity)
		if err != nil || qty.IsNegative() {
			return fmt.Errorf("%w: cantidad inválida para item %d", domain.ErrInvalidInput, req.ItemID)
		}
		if qty.GreaterThan(it.RequestedQty) {
			return fmt.Errorf("%w: item %d excede lo pedido", domain.ErrInvalidInput, req.ItemID)
		}
		it.DeliveredQty = qty
		if qty.IsPositive() {
			anyDelivered = true
		}
	}
	if !anyDelivered {
		return fmt.Errorf("%w: ninguna cantidad entregada", domain.ErrInvalidInput)
	}
	return nil
}

// deliveryStatus calcula el estado final: entregado si todo lo pedido salió, parcial si no.
func deliveryStatus(w *entity.Withdrawal) string {
	for _, it := range w.Items {
		if !it.DeliveredQty.Equal(it.RequestedQty) {
			return entity.WithdrawalPartial
		}
	}
	return entity.WithdrawalDelivered
}

// postToSAP contabiliza la salida en SAP y registra el resultado en el vale.
func (uc *UseCase) postToSAP(ctx context.Context, w *entity.Withdrawal) {
	header, items, err := uc.sapDocuments(w)
	if err != nil {
		uc.log.Error().Err(err).Int64("withdrawal_id", w.ID).Msg("no se pudo armar el movimiento SAP")
		uc.saveSAPResult(w.ID, entity.SAPError, "", "", err.Error())
		return
	}

	res := uc.delivery.PostDelivery(ctx, header, items)
	if res.Success {
		uc.log.Info().Int64("withdrawal_id", w.ID).Str("mat_doc", res.DocumentNumber).
			Str("doc_year", res.DocumentYear).Msg("movimiento contabilizado en SAP")
		uc.saveSAPResult(w.ID, entity.SAPProcessed, res.DocumentNumber, res.DocumentYear, "")
		return
	}
	uc.log.Warn().Int64("withdrawal_id", w.ID).Str("error", res.Error).
		Msg("fallo la contabilización SAP; el vale queda para reproceso")
	uc.saveSAPResult(w.ID, entity.SAPError, "", "", res.Error)
}

func (uc *UseCase) saveSAPResult(id int64, status, doc, year, msg string) {
	if err := uc.wRepo.UpdateSAPResult(id, status, doc, year, msg); err != nil {
		uc.log.Error().Err(err).Int64("withdrawal_id", id).Msg("no se pudo guardar el resultado SAP")
	}
}

// sapDocuments arma cabecera e items del RFC a partir del vale y sus maestros.
// Solo incluye las líneas con cantidad entregada positiva.
func (uc *UseCase) sapDocuments(w *entity.Withdrawal) (sap.DeliveryHeader, []sap.DeliveryItem, error) {
	emp, err := uc.empRepo.GetByID(w.EmployeeID)
	if err != nil {
		return sap.DeliveryHeader{}, nil, err
	}
	if emp == nil {
		return sap.DeliveryHeader{}, nil, fmt.Errorf("%w: empleado %d", domain.ErrNotFound, w.EmployeeID)
	}
	wh, err := uc.whRepo.GetByID(w.WarehouseID)
	if err != nil {
		return sap.DeliveryHeader{}, nil, err
	}
	if wh == nil {
		return sap.DeliveryHeader{}, nil, fmt.Errorf("%w: pañol %d", domain.ErrNotFound, w.WarehouseID)
	}
	cc, err := uc.ccRepo.GetByID(w.CostCenterID)
	if err != nil {
		return sap.DeliveryHeader{}, nil, err
	}
	if cc == nil {
		return sap.DeliveryHeader{}, nil, fmt.Errorf("%w: centro de costo %d", domain.ErrNotFound, w.CostCenterID)
	}

	header := sap.DeliveryHeader{
		EmployeeID:   strconv.FormatInt(emp.Legajo, 10),
		DeliveryDate: time.Now(),
		DocumentID:   strconv.FormatInt(w.ID, 10),
		MovementCode: sap.MovementIssue,
	}
	var items []sap.DeliveryItem
	for _, it := range w.Items {
		if !it.DeliveredQty.IsPositive() || it.Material == nil {
			continue
		}
		items = append(items, sap.DeliveryItem{
			MaterialCode: it.Material.Code,
			Plant:        wh.Plant,
			Warehouse:    wh.Code,
			Quantity:     it.DeliveredQty,
			CostCenter:   cc.Code,
		})
	}
	return header, items, nil
}
