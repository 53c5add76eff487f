package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/plate-rental-api/internal/application/billing"
	"github.com/jhoicas/plate-rental-api/internal/application/dto"
	"github.com/jhoicas/plate-rental-api/internal/domain"
)

// BillHandler maneja las peticiones HTTP de facturación de alquiler.
type BillHandler struct {
	calculate *billing.CalculateBillUseCase
	generate  *billing.GenerateBillUseCase
	validate  *validator.Validate
}

// NewBillHandler construye el handler.
func NewBillHandler(calculate *billing.CalculateBillUseCase, generate *billing.GenerateBillUseCase) *BillHandler {
	return &BillHandler{calculate: calculate, generate: generate, validate: newValidator()}
}

// Calculate calcula una factura con los challans enviados, sin persistir.
// POST /api/bills/calculate
func (h *BillHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateBillRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	bill, err := h.calculate.Calculate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// Generate factura al cliente con sus challans almacenados y guarda el resultado.
// POST /api/clients/:id/bills
func (h *BillHandler) Generate(c *fiber.Ctx) error {
	clientID := c.Params("id")
	if clientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de cliente requerido"})
	}
	var in dto.GenerateBillRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	bill, err := h.generate.Generate(c.Context(), clientID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// Preview calcula en lote la factura de varios clientes sin persistir.
// POST /api/bills/preview
func (h *BillHandler) Preview(c *fiber.Ctx) error {
	var in dto.BatchPreviewRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	items, err := h.generate.PreviewBatch(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"bill_date": in.BillDate, "items": items})
}

// GetByID devuelve una factura guardada con sus periodos.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	bill, err := h.generate.GetBill(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(bill)
}

// bind decodifica y valida el cuerpo. Con ok=false la respuesta 400 ya está escrita
// y err es el resultado de escribirla.
func (h *BillHandler) bind(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}

// writeError traduce los errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente o factura no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una factura con ese número"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
