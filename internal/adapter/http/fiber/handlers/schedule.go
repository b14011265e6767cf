package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/ports"
)

type ScheduleHandler struct {
	service ports.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service ports.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

func (h *ScheduleHandler) Set(c *fiber.Ctx) error {
	var req struct {
		Days     []int  `json:"days"`
		Time     string `json:"time"`
		Reminder bool   `json:"reminder"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	cfg, summary, err := h.service.SetSchedule(c.Context(), c.Params("id"), req.Days, req.Time, req.Reminder)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"config":  cfg,
		"summary": summary,
	})
}

func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.service.GetSchedule(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if cfg == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	return c.JSON(cfg)
}
