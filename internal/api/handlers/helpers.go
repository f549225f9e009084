package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyPreset):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrLimitReached):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, service.ErrRateLimited):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, service.ErrSSRFRejected):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrFetchTimeout):
		status = fiber.StatusGatewayTimeout
	case errors.Is(err, service.ErrGenerationUnavailable):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
