package service

import (
	"errors"
	"strings"

	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	photoRepo   *repository.PhotoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, photoRepo *repository.PhotoRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		photoRepo:   photoRepo,
	}
}

func (s *CommentService) CreateComment(photoID uint, authorID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("Comment body cannot be empty")
	}

	exists, err := s.photoRepo.Exists(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Photo")
	}

	comment := &models.Comment{
		PhotoID: photoID,
		UserID:  authorID,
		Body:    body,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

// UpdateComment replaces the comment body. Only the author or an elevated
// role may edit; updates are last-write-wins.
func (s *CommentService) UpdateComment(commentID uint, actor models.Actor, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("Comment body cannot be empty")
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, apperr.Internal(err)
	}

	if err := Authorize(actor, comment.UserID); err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

// DeleteComment removes a comment. The photo's owner gets no special
// authority here: author, moderator or admin only.
func (s *CommentService) DeleteComment(commentID uint, actor models.Actor) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment")
		}
		return apperr.Internal(err)
	}

	if err := Authorize(actor, comment.UserID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *CommentService) GetPhotoComments(photoID uint) ([]models.Comment, error) {
	exists, err := s.photoRepo.Exists(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Photo")
	}

	comments, err := s.commentRepo.GetByPhotoID(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}
