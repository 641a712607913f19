package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/application/orders"
	"github.com/kwisniewski/warsztat-api/internal/domain"
)

// OrderHandler handles HTTP requests for repair orders and estimates (protected).
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client, vehicle and all line references must exist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List GET /api/orders?limit=50&offset=0
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(order)
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	order, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client, vehicle and all line references must exist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(order)
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Estimate renders the estimate PDF for a stored order.
// POST /api/orders/:id/estimate
func (h *OrderHandler) Estimate(c *fiber.Ctx) error {
	var in dto.EstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	filename, pdfBytes, err := h.uc.GenerateEstimate(c.Params("id"), in, GetUserName(c))
	if err != nil {
		return estimateError(c, err)
	}
	return sendPDF(c, filename, pdfBytes)
}

// DraftEstimate renders the estimate PDF for an unsaved draft.
// POST /api/orders/estimate
func (h *OrderHandler) DraftEstimate(c *fiber.Ctx) error {
	var in dto.DraftEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	filename, pdfBytes, err := h.uc.GenerateDraftEstimate(in, GetUserName(c))
	if err != nil {
		return estimateError(c, err)
	}
	return sendPDF(c, filename, pdfBytes)
}

func estimateError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	if errors.Is(err, domain.ErrEstimateNotReady) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ESTIMATE_NOT_READY", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client, vehicle and all line references must exist"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func sendPDF(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(body)
}
