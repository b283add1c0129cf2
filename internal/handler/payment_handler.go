package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

// PaymentHandler exposes contest fee order creation.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(payments service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: payments,
		logger:  logger.With().Str("component", "payment_handler").Logger(),
	}
}

// Register attaches payment endpoints to the router group.
func (h *PaymentHandler) Register(router fiber.Router) {
	router.Post("/orders", h.createOrder)
}

func (h *PaymentHandler) createOrder(c *fiber.Ctx) error {
	var payload dto.FeeOrderRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.service.CreateFeeOrder(requestContext(c), userIDFromContext(c), payload)
	if err != nil {
		if handled, resp := sendServiceError(c, err); handled {
			return resp
		}
		h.logger.Error().Err(err).Msg("failed to create fee order")
		return utils.SendError(c, fiber.StatusBadGateway, "payment gateway unavailable")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "fee order created", order)
}
