package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/postplannerhq/postplanner/internal/service"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

type ScheduleHandler struct {
	s     service.ScheduledContentService
	codec service.CodecService
	usage service.UsageService
	r2    *service.R2Service
}

func NewScheduleHandler(
	s service.ScheduledContentService,
	codec service.CodecService,
	usage service.UsageService,
	r2 *service.R2Service) *ScheduleHandler {
	return &ScheduleHandler{s: s, codec: codec, usage: usage, r2: r2}
}

func (h *ScheduleHandler) CreateEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ScheduledContentUpsert
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	entry, err := h.s.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *ScheduleHandler) ListEntries(c *fiber.Ctx) error {
	userID := GetUserID(c)
	from := c.Query("from")
	to := c.Query("to")

	entries, err := h.s.List(c.Context(), userID, from, to)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *ScheduleHandler) UpdateEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid entry id",
		})
	}

	var req transfer.ScheduledContentUpsert
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	entry, err := h.s.Update(c.Context(), userID, int64(entryID), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

func (h *ScheduleHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid entry id",
		})
	}

	var req transfer.StatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdateStatus(c.Context(), userID, int64(entryID), req.Status); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ScheduleHandler) RemoveEntry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid entry id",
		})
	}

	if err := h.s.Remove(c.Context(), userID, int64(entryID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// ExportSchedule writes the calendar in Buffer's bulk upload CSV layout, or
// plain JSON. An optional from/to range narrows the export.
func (h *ScheduleHandler) ExportSchedule(c *fiber.Ctx) error {
	userID := GetUserID(c)
	format := c.Query("format", "csv")

	if format != "json" && format != "csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported export format",
		})
	}

	_, limits, err := h.usage.Tier(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	if !limits.CanExport {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Export requires a paid plan",
		})
	}

	entries, err := h.s.List(c.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}

	var data []byte
	if format == "csv" {
		data, err = h.codec.EncodeScheduleCSV(entries)
	} else {
		data, err = h.codec.EncodeScheduleJSON(entries)
	}
	if err != nil {
		return respondError(c, err)
	}

	if c.QueryBool("upload", false) {
		url, err := h.r2.UploadExport(c.Context(), userID, format, data)
		if err != nil {
			slog.Info(err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unable to upload export",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"url": url,
		})
	}

	contentType := "application/json"
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule.%s"`, format))
	return c.Status(fiber.StatusOK).Send(data)
}
