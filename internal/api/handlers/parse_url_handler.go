package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/service"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

type ParseURLHandler struct {
	s service.URLParserService
}

func NewParseURLHandler(service service.URLParserService) *ParseURLHandler {
	return &ParseURLHandler{s: service}
}

func (h *ParseURLHandler) ParseURL(c *fiber.Ctx) error {
	var req transfer.ParseURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	metadata, err := h.s.Parse(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(metadata)
}
