package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

type OnboardingHandler struct {
	service ports.OnboardingService
	log     *zap.Logger
}

func NewOnboardingHandler(service ports.OnboardingService, log *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		service: service,
		log:     log,
	}
}

func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	id, state, err := h.service.StartSession(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": id,
		"state":      state,
	})
}

func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	state, err := h.service.GetSession(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) Advance(c *fiber.Ctx) error {
	state, err := h.service.Advance(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (h *OnboardingHandler) SelectArchetype(c *fiber.Ctx) error {
	var req struct {
		Name domain.ArchetypeName `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if err := h.service.SelectArchetype(c.Params("id"), req.Name); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *OnboardingHandler) ToggleHabit(c *fiber.Ctx) error {
	var req struct {
		HabitID string `json:"habit_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if err := h.service.ToggleHabit(c.Params("id"), req.HabitID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *OnboardingHandler) AddCustomHabit(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	habit, err := h.service.AddCustomHabit(c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *OnboardingHandler) OpenAccessories(c *fiber.Ctx) error {
	if err := h.service.OpenAccessories(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *OnboardingHandler) SelectAccessory(c *fiber.Ctx) error {
	var req struct {
		AccessoryID string `json:"accessory_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if err := h.service.SelectAccessory(c.Params("id"), req.AccessoryID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *OnboardingHandler) CloseAccessories(c *fiber.Ctx) error {
	if err := h.service.CloseAccessories(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *OnboardingHandler) Commit(c *fiber.Ctx) error {
	profile, err := h.service.Commit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *OnboardingHandler) Abandon(c *fiber.Ctx) error {
	if err := h.service.Abandon(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
