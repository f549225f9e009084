package handlers

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/postplannerhq/postplanner/internal/queue"
	"github.com/postplannerhq/postplanner/internal/service"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

type PresetHandler struct {
	s           service.PresetService
	codec       service.CodecService
	scheduler   service.SchedulerService
	usage       service.UsageService
	r2          *service.R2Service
	AsynqClient *asynq.Client
}

func NewPresetHandler(
	s service.PresetService,
	codec service.CodecService,
	scheduler service.SchedulerService,
	usage service.UsageService,
	r2 *service.R2Service,
	asynqClient *asynq.Client) *PresetHandler {
	return &PresetHandler{
		s:           s,
		codec:       codec,
		scheduler:   scheduler,
		usage:       usage,
		r2:          r2,
		AsynqClient: asynqClient,
	}
}

func (h *PresetHandler) CreatePreset(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PresetUpsert
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	preset, err := h.s.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(preset)
}

func (h *PresetHandler) ListPresets(c *fiber.Ctx) error {
	userID := GetUserID(c)
	presetID := c.QueryInt("id", 0)

	if presetID != 0 {
		preset, err := h.s.GetByID(c.Context(), userID, int64(presetID))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(preset)
	}

	presets, err := h.s.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(presets)
}

func (h *PresetHandler) UpdatePreset(c *fiber.Ctx) error {
	userID := GetUserID(c)
	presetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid preset id",
		})
	}

	var req transfer.PresetUpsert
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	preset, err := h.s.Update(c.Context(), userID, int64(presetID), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(preset)
}

func (h *PresetHandler) RemovePreset(c *fiber.Ctx) error {
	userID := GetUserID(c)
	presetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid preset id",
		})
	}

	if err := h.s.Remove(c.Context(), userID, int64(presetID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PresetHandler) ImportPresets(c *fiber.Ctx) error {
	userID := GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}

	presets, dropped, err := h.codec.DecodePresets(data)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.s.Import(c.Context(), userID, presets, dropped)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PresetHandler) ExportPresets(c *fiber.Ctx) error {
	userID := GetUserID(c)
	format := c.Query("format", "json")

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

	presets, err := h.s.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	var data []byte
	if format == "csv" {
		data, err = h.codec.EncodePresetsCSV(presets)
	} else {
		data, err = h.codec.EncodePresetsJSON(presets)
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
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="presets.%s"`, format))
	return c.Status(fiber.StatusOK).Send(data)
}

// ApplyPreset kicks off a weekly generation run for the preset. With ?async=true
// the run happens on the task queue and the endpoint returns immediately.
func (h *PresetHandler) ApplyPreset(c *fiber.Ctx) error {
	userID := GetUserID(c)
	presetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid preset id",
		})
	}

	model := c.Query("model")

	if c.QueryBool("async", false) {
		err = queue.EnqueueApplyPreset(h.AsynqClient, queue.ApplyPresetPayload{
			UserID:   userID,
			PresetID: int64(presetID),
			Model:    model,
		})
		if err != nil {
			slog.Info(err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error scheduling generation",
			})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Generation scheduled",
		})
	}

	summary, err := h.scheduler.GenerateWeek(c.Context(), userID, &transfer.GenerateWeekRequest{
		PresetID: int64(presetID),
		Model:    model,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
