package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/ports"
)

type CatalogHandler struct {
	service ports.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service ports.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) ListArchetypes(c *fiber.Ctx) error {
	return c.JSON(h.service.ListArchetypes())
}

func (h *CatalogHandler) ListHabits(c *fiber.Ctx) error {
	return c.JSON(h.service.ListHabits())
}

func (h *CatalogHandler) ListAccessories(c *fiber.Ctx) error {
	return c.JSON(h.service.ListAccessories())
}
