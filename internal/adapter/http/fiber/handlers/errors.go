package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/habitua/internal/domain"
)

// respondError maps domain errors to HTTP responses. Validation failures
// carry their code so the client can highlight the offending field.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"code":  ve.Code,
		})
	}

	if errors.Is(err, domain.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	if errors.Is(err, domain.ErrCommitInFlight) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":     pe.Error(),
			"retryable": pe.Retryable(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
