package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"github.com/pawprints/pawprints-backend/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxUploadSize = 10 * 1024 * 1024

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	tagRepo   *repository.TagRepository
	blobStore storage.BlobStorage
	media     storage.MediaService
	logger    *zap.Logger
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	tagRepo *repository.TagRepository,
	blobStore storage.BlobStorage,
	media storage.MediaService,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		tagRepo:   tagRepo,
		blobStore: blobStore,
		media:     media,
		logger:    logger,
	}
}

// UploadPhoto stores the original in R2, publishes the image through the
// media service, then creates the local record. The local row is only
// written after both remote stores succeeded; a failed DB write cleans the
// remotes up again, so there is never a record pointing at nothing or an
// orphaned upload with a record.
func (s *PhotoService) UploadPhoto(userID uint, description string, file *multipart.FileHeader) (*models.Photo, error) {
	if !isValidImageType(file.Header.Get("Content-Type")) {
		return nil, apperr.Validation("Unsupported image type")
	}
	if file.Size > maxUploadSize {
		return nil, apperr.Validation("File size too large")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer src.Close()

	id := uuid.New().String()
	r2Key := fmt.Sprintf("photos/%d/%s", userID, id)

	if err := s.blobStore.Upload(r2Key, src); err != nil {
		s.logger.Error("archive upload failed", zap.String("key", r2Key), zap.Error(err))
		return nil, apperr.ExternalService("Failed to store photo", err)
	}

	// Second pass over the file for the media service.
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		s.cleanupArchive(r2Key)
		return nil, apperr.Internal(err)
	}

	publicID := fmt.Sprintf("image_%d_%s", userID, id)
	result, err := s.media.Upload(src, publicID, "publication")
	if err != nil {
		s.logger.Error("media upload failed", zap.String("public_id", publicID), zap.Error(err))
		s.cleanupArchive(r2Key)
		return nil, apperr.ExternalService("Failed to publish photo", err)
	}

	photo := &models.Photo{
		UserID:      userID,
		PublicID:    result.PublicID,
		URL:         result.URL,
		R2Key:       r2Key,
		FileName:    file.Filename,
		FileSize:    file.Size,
		MimeType:    file.Header.Get("Content-Type"),
		Description: description,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		s.cleanupArchive(r2Key)
		if derr := s.media.Delete(result.PublicID); derr != nil {
			s.logger.Error("cleanup of published photo failed",
				zap.String("public_id", result.PublicID), zap.Error(derr))
		}
		return nil, apperr.Internal(err)
	}

	return photo, nil
}

// cleanupArchive removes an orphaned original after a failed upload. The
// failure it handles is already being reported, so a failed cleanup is
// only logged; the object stays findable by key.
func (s *PhotoService) cleanupArchive(r2Key string) {
	if err := s.blobStore.Delete(r2Key); err != nil {
		s.logger.Error("cleanup of archived photo failed", zap.String("key", r2Key), zap.Error(err))
	}
}

func (s *PhotoService) GetPhoto(photoID uint) (*models.Photo, []models.Tag, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("Photo")
		}
		return nil, nil, apperr.Internal(err)
	}

	tags, err := s.tagRepo.GetPhotoTags(photoID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return photo, tags, nil
}

func (s *PhotoService) GetUserPhotos(userID uint) ([]models.Photo, error) {
	photos, err := s.photoRepo.GetByUserID(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return photos, nil
}

func (s *PhotoService) UpdateDescription(photoID uint, actor models.Actor, description string) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Photo")
		}
		return nil, apperr.Internal(err)
	}

	if err := Authorize(actor, photo.UserID); err != nil {
		return nil, err
	}

	photo.Description = description
	if err := s.photoRepo.Update(photo); err != nil {
		return nil, apperr.Internal(err)
	}
	return photo, nil
}

// DeletePhoto removes the remote copies first and only then the local
// record. If a remote delete fails the local row is kept so the
// inconsistency stays visible, and the failure is surfaced.
func (s *PhotoService) DeletePhoto(photoID uint, actor models.Actor) error {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Photo")
		}
		return apperr.Internal(err)
	}

	if err := Authorize(actor, photo.UserID); err != nil {
		return err
	}

	if err := s.media.Delete(photo.PublicID); err != nil {
		s.logger.Error("media delete failed, keeping local record",
			zap.Uint("photo_id", photoID), zap.String("public_id", photo.PublicID), zap.Error(err))
		return apperr.ExternalService("Failed to delete photo from media service", err)
	}

	if err := s.blobStore.Delete(photo.R2Key); err != nil {
		s.logger.Error("archive delete failed, keeping local record",
			zap.Uint("photo_id", photoID), zap.String("key", photo.R2Key), zap.Error(err))
		return apperr.ExternalService("Failed to delete photo from storage", err)
	}

	if err := s.photoRepo.Delete(photoID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// TransformPhoto asks the media service for a rotated rendition and
// records its URL on the photo.
func (s *PhotoService) TransformPhoto(photoID uint, actor models.Actor, angle int) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Photo")
		}
		return nil, apperr.Internal(err)
	}

	if err := Authorize(actor, photo.UserID); err != nil {
		return nil, err
	}

	transformID := fmt.Sprintf("transform/%s", photo.PublicID)
	transformedURL, err := s.media.Transform(photo.URL, transformID, angle)
	if err != nil {
		s.logger.Error("transform failed",
			zap.Uint("photo_id", photoID), zap.Int("angle", angle), zap.Error(err))
		return nil, apperr.ExternalService("Failed to transform photo", err)
	}

	if err := s.photoRepo.UpdateTransformedURL(photoID, transformedURL); err != nil {
		return nil, apperr.Internal(err)
	}
	photo.TransformedURL = transformedURL
	return photo, nil
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
