package service

import (
	"errors"
	"fmt"

	"github.com/pawprints/pawprints-backend/internal/config"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"github.com/pawprints/pawprints-backend/pkg/utils"
	"gorm.io/gorm"
)

type TagService struct {
	tagRepo   *repository.TagRepository
	photoRepo *repository.PhotoRepository
	maxTags   int
}

func NewTagService(tagRepo *repository.TagRepository, photoRepo *repository.PhotoRepository, cfg *config.Config) *TagService {
	maxTags := cfg.MaxTagsPerPhoto
	if maxTags <= 0 {
		maxTags = config.DefaultMaxTagsPerPhoto
	}
	return &TagService{
		tagRepo:   tagRepo,
		photoRepo: photoRepo,
		maxTags:   maxTags,
	}
}

// AddTagsToPhoto attaches tags to a photo, creating missing tags on the
// way. Input names are normalized and deduplicated first; the whole batch
// is rejected if the photo would end up with more than maxTags distinct
// tags, in which case nothing is written.
func (s *TagService) AddTagsToPhoto(photoID uint, names []string) ([]models.Tag, error) {
	normalized := utils.NormalizeTagNames(names)
	if len(normalized) == 0 {
		return nil, apperr.Validation("No valid tag names provided")
	}

	exists, err := s.photoRepo.Exists(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Photo")
	}

	tags, err := s.tagRepo.AddTagsToPhoto(photoID, normalized, s.maxTags)
	if err != nil {
		if errors.Is(err, repository.ErrTagLimitExceeded) {
			return nil, apperr.TooManyTags(fmt.Sprintf("A photo can have at most %d tags", s.maxTags))
		}
		return nil, apperr.Internal(err)
	}
	return tags, nil
}

// GetPhotoTags returns the photo's tags. A photo with no tags yields an
// empty slice, not an error; absent photos report NotFound.
func (s *TagService) GetPhotoTags(photoID uint) ([]models.Tag, error) {
	exists, err := s.photoRepo.Exists(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("Photo")
	}

	tags, err := s.tagRepo.GetPhotoTags(photoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

func (s *TagService) GetAllTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tags, nil
}

func (s *TagService) GetTagByID(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tag")
		}
		return nil, apperr.Internal(err)
	}
	return tag, nil
}

func (s *TagService) GetTagByName(name string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByName(utils.NormalizeTagName(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tag")
		}
		return nil, apperr.Internal(err)
	}
	return tag, nil
}

// RenameTag is admin-only (enforced at the route). Renaming onto another
// existing tag's name is a conflict, not an idempotent merge.
func (s *TagService) RenameTag(id uint, newName string) (*models.Tag, error) {
	normalized := utils.NormalizeTagName(newName)
	if normalized == "" {
		return nil, apperr.Validation("Tag name cannot be empty")
	}

	tag, err := s.tagRepo.Rename(id, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tag")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("A tag with that name already exists")
		}
		return nil, apperr.Internal(err)
	}
	return tag, nil
}

func (s *TagService) DeleteTag(id uint) error {
	if err := s.tagRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Tag")
		}
		return apperr.Internal(err)
	}
	return nil
}
