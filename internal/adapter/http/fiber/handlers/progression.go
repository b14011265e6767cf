package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/ports"
)

type ProgressionHandler struct {
	service ports.ProgressionService
	store   ports.ProfileStore
	log     *zap.Logger
}

func NewProgressionHandler(service ports.ProgressionService, store ports.ProfileStore, log *zap.Logger) *ProgressionHandler {
	return &ProgressionHandler{
		service: service,
		store:   store,
		log:     log,
	}
}

func (h *ProgressionHandler) LevelUp(c *fiber.Ctx) error {
	profile, bonus, err := h.service.ApplyLevelUp(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile": profile,
		"bonus":   bonus,
	})
}

func (h *ProgressionHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.store.GetProfile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return c.JSON(profile)
}
