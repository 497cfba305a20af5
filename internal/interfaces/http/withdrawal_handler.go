package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rioplatense/vsm-api/internal/application/dto"
	"github.com/rioplatense/vsm-api/internal/application/withdrawal"
	"github.com/rioplatense/vsm-api/internal/domain"
)

// WithdrawalHandler maneja el ciclo de vida de los vales de retiro.
type WithdrawalHandler struct {
	uc *withdrawal.UseCase
}

// NewWithdrawalHandler construye el handler de vales.
func NewWithdrawalHandler(uc *withdrawal.UseCase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

func withdrawalID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func withdrawalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vale no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMaterialNotAllowed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MATERIAL_NOT_ALLOWED", Message: err.Error()})
	case errors.Is(err, domain.ErrWithdrawalClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WITHDRAWAL_CLOSED", Message: "el vale ya no está pendiente"})
	case errors.Is(err, domain.ErrSAPReversalFailed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SAP_REVERSAL_FAILED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear vale de retiro
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWithdrawalRequest  true  "empleado, pañol e items"
// @Success      201   {object}  dto.WithdrawalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/withdrawals [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmployeeID <= 0 || in.WarehouseID <= 0 || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id, warehouse_id e items son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return withdrawalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener vale por ID
// @Tags         withdrawals
// @Produce      json
// @Param        id   path      int  true  "ID del vale"
// @Success      200  {object}  dto.WithdrawalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id} [get]
func (h *WithdrawalHandler) Get(c *fiber.Ctx) error {
	id, err := withdrawalID(c)
	if err != nil {
		return withdrawalError(c, err)
	}
	out, err := h.uc.Get(id)
	if err != nil {
		return withdrawalError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar vales (paginado)
// @Tags         withdrawals
// @Produce      json
// @Param        status       query  string  false  "pendiente|entregado|parcial|rechazado"
// @Param        employee_id  query  int     false  "filtrar por empleado"
// @Param        limit        query  int     false  "tamaño de página"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.WithdrawalListResponse
// @Router       /api/withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	employeeID, _ := strconv.ParseInt(c.Query("employee_id", "0"), 10, 64)
	out, err := h.uc.List(c.Query("status"), employeeID, page)
	if err != nil {
		return withdrawalError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Entregar vale (contabiliza salida 201 en SAP)
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID del vale"
// @Param        body  body  dto.DeliverWithdrawalRequest  true  "cantidades entregadas"
// @Success      200   {object}  dto.WithdrawalResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id}/deliver [post]
func (h *WithdrawalHandler) Deliver(c *fiber.Ctx) error {
	id, err := withdrawalID(c)
	if err != nil {
		return withdrawalError(c, err)
	}
	var in dto.DeliverWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Deliver(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return withdrawalError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar vale pendiente
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del vale"
// @Param        body  body  dto.RejectWithdrawalRequest  true  "motivo"
// @Success      200   {object}  dto.WithdrawalResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id}/reject [post]
func (h *WithdrawalHandler) Reject(c *fiber.Ctx) error {
	id, err := withdrawalID(c)
	if err != nil {
		return withdrawalError(c, err)
	}
	var in dto.RejectWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	out, err := h.uc.Reject(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return withdrawalError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular vale (si está contabilizado, primero anula en SAP con 202)
// @Tags         withdrawals
// @Param        id  path  int  true  "ID del vale"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "la anulación SAP falló; el vale no se dio de baja"
// @Router       /api/withdrawals/{id} [delete]
func (h *WithdrawalHandler) Cancel(c *fiber.Ctx) error {
	id, err := withdrawalID(c)
	if err != nil {
		return withdrawalError(c, err)
	}
	if err := h.uc.Cancel(c.UserContext(), id); err != nil {
		return withdrawalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Slip godoc
// @Summary      Comprobante PDF del vale
// @Tags         withdrawals
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del vale"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id}/slip [get]
func (h *WithdrawalHandler) Slip(c *fiber.Ctx) error {
	id, err := withdrawalID(c)
	if err != nil {
		return withdrawalError(c, err)
	}
	pdfBytes, err := h.uc.Slip(c.UserContext(), id)
	if err != nil {
		return withdrawalError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="vale.pdf"`)
	return c.Send(pdfBytes)
}
