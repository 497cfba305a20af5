package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/application/stock"
	"github.com/rioplatense/vsm-api/internal/domain"
)

// StockHandler expone la consulta de stock en vivo contra SAP.
type StockHandler struct {
	uc *stock.QueryUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.QueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Query godoc
// @Summary      Consultar stock SAP de materiales del catálogo
// @Description  Busca materiales por código o descripción y adjunta el LABST actual en SAP. Si SAP no responde, el stock llega en cero.
// @Tags         stock
// @Produce      json
// @Param        q             query  string  false  "texto a buscar"
// @Param        warehouse_id  query  int     true   "pañol"
// @Param        limit         query  int     false  "máximo de materiales"
// @Success      200  {array}   dto.MaterialStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Query(c *fiber.Ctx) error {
	var in dto.StockQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	if in.WarehouseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	out, err := h.uc.Query(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
