package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rioplatense/vsm-api/internal/application/catalog"
	"github.com/rioplatense/vsm-api/internal/application/dto"
)

// CatalogHandler expone los maestros locales para los combos de la UI.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// SearchEmployees godoc
// @Summary      Buscar empleados habilitados
// @Tags         catalog
// @Produce      json
// @Param        q      query  string  false  "nombre o legajo"
// @Param        limit  query  int     false  "máximo de resultados"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *CatalogHandler) SearchEmployees(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	out, err := h.uc.SearchEmployees(c.Query("q"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListCostCenters godoc
// @Summary      Listar centros de costo
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CostCenterResponse
// @Router       /api/cost-centers [get]
func (h *CatalogHandler) ListCostCenters(c *fiber.Ctx) error {
	out, err := h.uc.ListCostCenters()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListWarehouses godoc
// @Summary      Listar pañoles
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	out, err := h.uc.ListWarehouses()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SearchMaterials godoc
// @Summary      Buscar materiales del catálogo
// @Tags         catalog
// @Produce      json
// @Param        q               query  string  false  "código o descripción"
// @Param        cost_center_id  query  int     false  "solo habilitados para el centro de costo"
// @Param        limit           query  int     false  "máximo de resultados"
// @Success      200  {array}  dto.MaterialStockResponse
// @Router       /api/materials [get]
func (h *CatalogHandler) SearchMaterials(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	costCenterID, _ := strconv.ParseInt(c.Query("cost_center_id", "0"), 10, 64)
	out, err := h.uc.SearchMaterials(c.Query("q"), costCenterID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
