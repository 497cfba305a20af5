package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/application/stock"
	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/pkg/logger"
)

type fakeMaterialRepo struct {
	results []*entity.Material
}

func (f *fakeMaterialRepo) Create(*entity.Material) error                 { return nil }
func (f *fakeMaterialRepo) GetByID(int64) (*entity.Material, error)       { return nil, nil }
func (f *fakeMaterialRepo) GetByCode(string) (*entity.Material, error)    { return nil, nil }
func (f *fakeMaterialRepo) ListByIDs([]int64) ([]*entity.Material, error) { return nil, nil }
func (f *fakeMaterialRepo) IsAllowed(int64, int64) (bool, error)          { return true, nil }
func (f *fakeMaterialRepo) Search(_ string, _ int64, limit int) ([]*entity.Material, error) {
	if limit < len(f.results) {
		return f.results[:limit], nil
	}
	return f.results, nil
}

type fakeWarehouseRepo struct{ wh *entity.Warehouse }

func (f *fakeWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	if f.wh != nil && f.wh.ID == id {
		return f.wh, nil
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) GetByCode(string) (*entity.Warehouse, error) { return f.wh, nil }
func (f *fakeWarehouseRepo) List() ([]*entity.Warehouse, error) {
	return []*entity.Warehouse{f.wh}, nil
}

// stubStockQuerier devuelve un mapa fijo y registra los parámetros recibidos.
type stubStockQuerier struct {
	stock        map[string]int
	gotCodes     []string
	gotWarehouse string
	gotPlant     string
}

func (s *stubStockQuerier) GetStock(_ context.Context, codes []string, warehouseID, plant string) map[string]int {
	s.gotCodes, s.gotWarehouse, s.gotPlant = codes, warehouseID, plant
	return s.stock
}

func newQueryUC(mats []*entity.Material, sapStock map[string]int) (*stock.QueryUseCase, *stubStockQuerier) {
	querier := &stubStockQuerier{stock: sapStock}
	uc := stock.NewQueryUseCase(
		&fakeMaterialRepo{results: mats},
		&fakeWarehouseRepo{wh: &entity.Warehouse{ID: 2, Code: "PA01", Plant: "1000", Active: true}},
		querier,
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return uc, querier
}

func TestQuery_AdjuntaStockSAPPorCodigo(t *testing.T) {
	mats := []*entity.Material{
		{ID: 10, Code: "MAT-7", Description: "Guante nitrilo", UnitMeasure: "PAR"},
		{ID: 11, Code: "MAT-9", Description: "Casco", UnitMeasure: "UN"},
	}
	uc, querier := newQueryUC(mats, map[string]int{"MAT-7": 42, "MAT-9": 0})

	out, err := uc.Query(context.Background(), dto.StockQueryRequest{Query: "guante", WarehouseID: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, 42, out[0].Stock)
	assert.Equal(t, "MAT-7", out[0].Code)
	assert.Equal(t, 0, out[1].Stock)

	// El pañol local define LGORT y WERKS de la consulta
	assert.Equal(t, []string{"MAT-7", "MAT-9"}, querier.gotCodes)
	assert.Equal(t, "PA01", querier.gotWarehouse)
	assert.Equal(t, "1000", querier.gotPlant)
}

func TestQuery_StockCeroCuandoSAPNoDevuelveElCodigo(t *testing.T) {
	mats := []*entity.Material{{ID: 10, Code: "MAT-7", Description: "Guante nitrilo", UnitMeasure: "PAR"}}
	// SAP caído: el adaptador degrada a mapa vacío, nunca a error
	uc, _ := newQueryUC(mats, map[string]int{})

	out, err := uc.Query(context.Background(), dto.StockQueryRequest{Query: "guante", WarehouseID: 2})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Stock)
}

func TestQuery_PanolInexistente(t *testing.T) {
	uc, querier := newQueryUC(nil, nil)

	_, err := uc.Query(context.Background(), dto.StockQueryRequest{Query: "guante", WarehouseID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, querier.gotCodes, "sin pañol válido no debe consultarse SAP")
}

func TestQuery_SinResultadosNoConsultaSAP(t *testing.T) {
	uc, querier := newQueryUC(nil, map[string]int{})

	out, err := uc.Query(context.Background(), dto.StockQueryRequest{Query: "zzz", WarehouseID: 2})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Nil(t, querier.gotCodes)
}
