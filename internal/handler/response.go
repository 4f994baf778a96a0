package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
)

// writeError maps a service-layer error onto the response envelope. Every
// error kind keeps its stable code so clients can branch on it.
func writeError(c *fiber.Ctx, err error) error {
	if ae := apperr.As(err); ae != nil {
		return c.Status(ae.HTTPStatus).JSON(models.ErrorResponseWithCode(ae.Message, ae.Code))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("An unexpected error occurred"))
}
