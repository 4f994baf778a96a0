package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/utils"
)

type TagHandler struct {
	tagService *service.TagService
	validator  *utils.Validator
}

func NewTagHandler(tagService *service.TagService, validator *utils.Validator) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  validator,
	}
}

func (h *TagHandler) AddTagsToPhoto(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	var req models.AddTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	tags, err := h.tagService.AddTagsToPhoto(photoID, req.Tags)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(tags, "Tags added to photo"))
}

func (h *TagHandler) GetPhotoTags(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	tags, err := h.tagService.GetPhotoTags(photoID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(tags, "Tags retrieved successfully"))
}

func (h *TagHandler) GetAllTags(c *fiber.Ctx) error {
	tags, err := h.tagService.GetAllTags()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.SuccessResponse(tags, "Tags retrieved successfully"))
}

func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tag ID"))
	}

	tag, err := h.tagService.GetTagByID(tagID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.SuccessResponse(tag, "Tag retrieved successfully"))
}

func (h *TagHandler) RenameTag(c *fiber.Ctx) error {
	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tag ID"))
	}

	var req models.RenameTagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	tag, err := h.tagService.RenameTag(tagID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.SuccessResponse(tag, "Tag renamed successfully"))
}

func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	tagID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tag ID"))
	}

	if err := h.tagService.DeleteTag(tagID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Tag deleted successfully"))
}
