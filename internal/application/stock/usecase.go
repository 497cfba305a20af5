// Package stock expone la consulta de stock en vivo: catálogo local + LABST de SAP.
package stock

import (
	"context"
	"fmt"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
	"github.com/rioplatense/vsm-api/pkg/logger"
)

// StockQuerier puerto hacia SAP para consultar stock por lista de códigos.
// Ante fallos devuelve todos los códigos en cero (degradación, nunca error).
type StockQuerier interface {
	GetStock(ctx context.Context, codes []string, warehouseID, plant string) map[string]int
}

// QueryUseCase consulta de materiales con stock SAP.
type QueryUseCase struct {
	matRepo repository.MaterialRepository
	whRepo  repository.WarehouseRepository
	sap     StockQuerier
	log     *logger.Logger
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	matRepo repository.MaterialRepository,
	whRepo repository.WarehouseRepository,
	sap StockQuerier,
	log *logger.Logger,
) *QueryUseCase {
	return &QueryUseCase{matRepo: matRepo, whRepo: whRepo, sap: sap, log: log}
}

// Query busca materiales del catálogo y les adjunta el stock actual en SAP.
func (uc *QueryUseCase) Query(ctx context.Context, in dto.StockQueryRequest) ([]dto.MaterialStockResponse, error) {
	wh, err := uc.whRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: pañol %d", domain.ErrNotFound, in.WarehouseID)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	materials, err := uc.matRepo.Search(in.Query, 0, limit)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return []dto.MaterialStockResponse{}, nil
	}

	codes := make([]string, 0, len(materials))
	for _, m := range materials {
		codes = append(codes, m.Code)
	}
	stock := uc.sap.GetStock(ctx, codes, wh.Code, wh.Plant)

	result := make([]dto.MaterialStockResponse, 0, len(materials))
	for _, m := range materials {
		result = append(result, dto.MaterialStockResponse{
			MaterialID:  m.ID,
			Code:        m.Code,
			Description: m.Description,
			UnitMeasure: m.UnitMeasure,
			Stock:       stock[m.Code],
		})
	}
	return result, nil
}
