package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/service"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

type GenerateHandler struct {
	s         service.GenerationService
	scheduler service.SchedulerService
}

func NewGenerateHandler(s service.GenerationService, scheduler service.SchedulerService) *GenerateHandler {
	return &GenerateHandler{s: s, scheduler: scheduler}
}

func (h *GenerateHandler) GenerateWeek(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.GenerateWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	summary, err := h.scheduler.GenerateWeek(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

// Generate serves one-off generations. A model of "both" fans out to every
// configured provider and returns all successes.
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var req transfer.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	genReq := &transfer.GenerationRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
	}

	if req.Model == "both" {
		results, err := h.s.GenerateAll(c.Context(), genReq)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"results": results,
		})
	}

	result, err := h.s.Generate(c.Context(), req.Model, genReq)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GenerateHandler) Variation(c *fiber.Ctx) error {
	var req transfer.VariationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Variation(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GenerateHandler) Improve(c *fiber.Ctx) error {
	var req transfer.ImproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Improve(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GenerateHandler) Hashtags(c *fiber.Ctx) error {
	var req transfer.HashtagsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	tags, err := h.s.Hashtags(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"hashtags": tags,
	})
}

func (h *GenerateHandler) Analyze(c *fiber.Ctx) error {
	var req transfer.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	score, err := h.s.Analyze(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(score)
}
