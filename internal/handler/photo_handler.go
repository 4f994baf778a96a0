package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pawprints/pawprints-backend/internal/middleware"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/qrcode"
	"github.com/pawprints/pawprints-backend/pkg/utils"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	tagService   *service.TagService
	qrService    *qrcode.QRService
	validator    *utils.Validator
}

func NewPhotoHandler(
	photoService *service.PhotoService,
	tagService *service.TagService,
	qrService *qrcode.QRService,
	validator *utils.Validator,
) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		tagService:   tagService,
		qrService:    qrService,
		validator:    validator,
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No file uploaded"))
	}
	description := c.FormValue("description")

	photo, err := h.photoService.UploadPhoto(userID, description, file)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(
		models.NewPhotoResponse(photo, nil), "Photo uploaded successfully"))
}

func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	photo, tags, err := h.photoService.GetPhoto(photoID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(
		models.NewPhotoResponse(photo, tags), "Photo retrieved successfully"))
}

func (h *PhotoHandler) GetMyPhotos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photos, err := h.photoService.GetUserPhotos(userID)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]models.PhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, models.NewPhotoResponse(&photos[i], nil))
	}

	return c.JSON(models.SuccessResponse(responses, "Photos retrieved successfully"))
}

func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	var req models.UpdatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	photo, err := h.photoService.UpdateDescription(photoID, middleware.ActorFromContext(c), req.Description)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(
		models.NewPhotoResponse(photo, nil), "Photo updated successfully"))
}

func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	if err := h.photoService.DeletePhoto(photoID, middleware.ActorFromContext(c)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Photo deleted successfully"))
}

func (h *PhotoHandler) TransformPhoto(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	// Default rotation matches the original client behaviour.
	angle := c.QueryInt("angle", 45)
	if angle < -360 || angle > 360 || angle == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid rotation angle"))
	}

	photo, err := h.photoService.TransformPhoto(photoID, middleware.ActorFromContext(c), angle)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"transformed_url": photo.TransformedURL,
	}, "Photo transformed successfully"))
}

// GetPhotoQRCode renders the photo's share link as a PNG QR code.
func (h *PhotoHandler) GetPhotoQRCode(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	// 404 for absent photos before rendering anything.
	if _, _, err := h.photoService.GetPhoto(photoID); err != nil {
		return writeError(c, err)
	}

	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.qrService.GenerateQRCode(photoID, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to generate QR code"))
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
