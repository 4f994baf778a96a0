package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawprints/pawprints-backend/internal/middleware"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/utils"
)

type CommentHandler struct {
	commentService *service.CommentService
	validator      *utils.Validator
}

func NewCommentHandler(commentService *service.CommentService, validator *utils.Validator) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator,
	}
}

func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID := c.Locals("userID").(uint)
	comment, err := h.commentService.CreateComment(photoID, userID, req.Body)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(comment, "Comment created successfully"))
}

func (h *CommentHandler) GetPhotoComments(c *fiber.Ctx) error {
	photoID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}

	comments, err := h.commentService.GetPhotoComments(photoID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(comments, "Comments retrieved successfully"))
}

func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid comment ID"))
	}

	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	comment, err := h.commentService.UpdateComment(commentID, middleware.ActorFromContext(c), req.Body)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(comment, "Comment updated successfully"))
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid comment ID"))
	}

	if err := h.commentService.DeleteComment(commentID, middleware.ActorFromContext(c)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Comment deleted successfully"))
}
