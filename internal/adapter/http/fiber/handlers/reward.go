package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/ports"
)

type RewardHandler struct {
	service ports.RewardService
	log     *zap.Logger
}

func NewRewardHandler(service ports.RewardService, log *zap.Logger) *RewardHandler {
	return &RewardHandler{
		service: service,
		log:     log,
	}
}

func (h *RewardHandler) OpenCards(c *fiber.Ctx) error {
	var req struct {
		GuaranteedReward bool `json:"guaranteed_reward"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	id, cards, err := h.service.OpenCards(req.GuaranteedReward)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": id,
		"cards":      len(cards),
	})
}

func (h *RewardHandler) Reveal(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid card index"})
	}

	reveal, err := h.service.Reveal(c.Context(), c.Params("id"), index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reveal)
}

func (h *RewardHandler) CloseCards(c *fiber.Ctx) error {
	if err := h.service.CloseCards(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
