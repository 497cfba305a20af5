// Package withdrawal contiene los casos de uso del ciclo de vida del vale de
// retiro: creación, entrega (con contabilización en SAP), rechazo y anulación.
package withdrawal

import (
	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
	"github.com/rioplatense/vsm-api/pkg/logger"
)

// UseCase casos de uso de vales de retiro.
type UseCase struct {
	txRunner TxRunner
	wRepo    repository.WithdrawalRepository
	matRepo  repository.MaterialRepository
	empRepo  repository.EmployeeRepository
	ccRepo   repository.CostCenterRepository
	whRepo   repository.WarehouseRepository
	delivery DeliveryPoster
	slip     SlipGenerator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso con sus puertos.
func NewUseCase(
	txRunner TxRunner,
	wRepo repository.WithdrawalRepository,
	matRepo repository.MaterialRepository,
	empRepo repository.EmployeeRepository,
	ccRepo repository.CostCenterRepository,
	whRepo repository.WarehouseRepository,
	delivery DeliveryPoster,
	slip SlipGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		wRepo:    wRepo,
		matRepo:  matRepo,
		empRepo:  empRepo,
		ccRepo:   ccRepo,
		whRepo:   whRepo,
		delivery: delivery,
		slip:     slip,
		log:      log,
	}
}

// Get devuelve un vale por ID con sus items.
func (uc *UseCase) Get(id int64) (*dto.WithdrawalResponse, error) {
	w, err := uc.wRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(w)
	return &resp, nil
}

// List devuelve una página de vales según filtro.
func (uc *UseCase) List(status string, employeeID int64, page dto.PageRequest) (*dto.WithdrawalListResponse, error) {
	page.DefaultPage()
	ws, total, err := uc.wRepo.List(repository.WithdrawalFilter{
		Status:     status,
		EmployeeID: employeeID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.WithdrawalListResponse{
		Data: make([]dto.WithdrawalResponse, 0, len(ws)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, w := range ws {
		resp.Data = append(resp.Data, toResponse(w))
	}
	return resp, nil
}

func toResponse(w *entity.Withdrawal) dto.WithdrawalResponse {
	resp := dto.WithdrawalResponse{
		ID:          w.ID,
		EmployeeID:  w.EmployeeID,
		WarehouseID: w.WarehouseID,
		Status:      w.Status,
		Notes:       w.Notes,
		SAPStatus:   w.SAPStatus,
		SAPDocument: w.SAPDocument,
		SAPYear:     w.SAPYear,
		SAPMessage:  w.SAPMessage,
		DeliveredAt: w.DeliveredAt,
		CreatedAt:   w.CreatedAt,
	}
	for _, it := range w.Items {
		item := dto.WithdrawalItemResponse{
			ID:           it.ID,
			MaterialID:   it.MaterialID,
			RequestedQty: it.RequestedQty.String(),
			DeliveredQty: it.DeliveredQty.String(),
		}
		if it.Material != nil {
			item.MaterialCode = it.Material.Code
			item.Description = it.Material.Description
			item.UnitMeasure = it.Material.UnitMeasure
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
