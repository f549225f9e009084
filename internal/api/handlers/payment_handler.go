package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/service"
)

type PaymentHandler struct {
	s service.SubscriptionService
}

func NewPaymentHandler(service service.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{s: service}
}

// PaymentWebhook receives Stripe events. The raw body is handed to the
// service untouched because the signature covers the exact bytes.
func (h *PaymentHandler) PaymentWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	err := h.s.HandleWebhook(c.Context(), payload, signature)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
