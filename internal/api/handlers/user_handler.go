package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/service"
)

type UserHandler struct {
	s     service.UserService
	subs  service.SubscriptionService
	usage service.UsageService
}

func NewUserHandler(service service.UserService, subs service.SubscriptionService, usage service.UsageService) *UserHandler {
	return &UserHandler{s: service, subs: subs, usage: usage}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userId := GetUserID(c)

	userInfo, err := h.s.GetByID(c.Context(), userId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(userInfo)
}

func (h *UserHandler) GetSubscription(c *fiber.Ctx) error {
	userId := GetUserID(c)

	sub, err := h.subs.GetByUserID(c.Context(), userId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sub)
}

// GetUsage reports the remaining monthly allowance for each metered action.
func (h *UserHandler) GetUsage(c *fiber.Ctx) error {
	userId := GetUserID(c)

	tier, limits, err := h.usage.Tier(c.Context(), userId)
	if err != nil {
		return respondError(c, err)
	}

	generations, err := h.usage.Remaining(c.Context(), userId, models.MetricAIGenerations)
	if err != nil {
		return respondError(c, err)
	}

	scheduled, err := h.usage.Remaining(c.Context(), userId, models.MetricScheduledPosts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"tier":                      tier,
		"limits":                    limits,
		"ai_generations_remaining":  generations,
		"scheduled_posts_remaining": scheduled,
	})
}
