package service_test

import (
	"testing"

	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type photoFixture struct {
	svc       *service.PhotoService
	photoRepo *repository.PhotoRepository
	tagRepo   *repository.TagRepository
	blob      *fakeBlobStore
	media     *fakeMedia
}

func newPhotoService(t *testing.T) *photoFixture {
	t.Helper()
	db := newTestDB(t)
	photoRepo := repository.NewPhotoRepository(db)
	tagRepo := repository.NewTagRepository(db)
	blob := &fakeBlobStore{}
	media := &fakeMedia{}
	svc := service.NewPhotoService(photoRepo, tagRepo, blob, media, zap.NewNop())
	return &photoFixture{svc: svc, photoRepo: photoRepo, tagRepo: tagRepo, blob: blob, media: media}
}

func TestUploadPhoto(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newPhotoService(t)
		file := makeFileHeader(t, "dog.png", "image/png", []byte("fake png bytes"))

		photo, err := f.svc.UploadPhoto(1, "my dog", file)
		require.NoError(t, err)
		assert.Equal(t, uint(1), photo.UserID)
		assert.Equal(t, "my dog", photo.Description)
		assert.NotEmpty(t, photo.URL)
		assert.NotEmpty(t, photo.PublicID)
		assert.Len(t, f.blob.uploaded, 1)
		assert.Len(t, f.media.uploaded, 1)

		stored, err := f.photoRepo.GetByID(photo.ID)
		require.NoError(t, err)
		assert.Equal(t, photo.URL, stored.URL)
	})

	t.Run("unsupported_type", func(t *testing.T) {
		f := newPhotoService(t)
		file := makeFileHeader(t, "notes.txt", "text/plain", []byte("not an image"))

		_, err := f.svc.UploadPhoto(1, "", file)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Empty(t, f.blob.uploaded)
	})

	t.Run("media_failure_cleans_archive_and_writes_nothing", func(t *testing.T) {
		f := newPhotoService(t)
		f.media.uploadErr = errUpstream
		file := makeFileHeader(t, "dog.png", "image/png", []byte("fake png bytes"))

		_, err := f.svc.UploadPhoto(1, "", file)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", ae.Code)

		// Archived original was rolled back, no local record exists.
		assert.Len(t, f.blob.deleted, 1)
		photos, err := f.photoRepo.GetByUserID(1)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("failed_cleanup_keeps_original_error", func(t *testing.T) {
		f := newPhotoService(t)
		f.media.uploadErr = errUpstream
		f.blob.deleteErr = errUpstream
		file := makeFileHeader(t, "dog.png", "image/png", []byte("fake png bytes"))

		// The media failure is what the caller hears about, even when
		// removing the orphaned archive object fails too.
		_, err := f.svc.UploadPhoto(1, "", file)
		require.Error(t, err)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", apperr.As(err).Code)

		photos, err := f.photoRepo.GetByUserID(1)
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("archive_failure_is_external_error", func(t *testing.T) {
		f := newPhotoService(t)
		f.blob.uploadErr = errUpstream
		file := makeFileHeader(t, "dog.png", "image/png", []byte("fake png bytes"))

		_, err := f.svc.UploadPhoto(1, "", file)
		require.Error(t, err)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", apperr.As(err).Code)
	})
}

func TestDeletePhoto(t *testing.T) {
	t.Run("remote_failure_keeps_local_record", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)
		f.media.deleteErr = errUpstream

		err := f.svc.DeletePhoto(photo.ID, models.Actor{ID: 1, Role: models.RoleUser})
		require.Error(t, err)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", apperr.As(err).Code)

		// The record must survive so the inconsistency stays visible.
		_, err = f.photoRepo.GetByID(photo.ID)
		require.NoError(t, err)
	})

	t.Run("owner_delete_removes_remotes_then_record", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)

		require.NoError(t, f.svc.DeletePhoto(photo.ID, models.Actor{ID: 1, Role: models.RoleUser}))
		assert.Equal(t, []string{photo.PublicID}, f.media.deleted)
		assert.Equal(t, []string{photo.R2Key}, f.blob.deleted)

		_, _, err := f.svc.GetPhoto(photo.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("delete_cascades_tag_associations_but_keeps_tags", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)
		_, err := f.tagRepo.AddTagsToPhoto(photo.ID, []string{"dog"}, 5)
		require.NoError(t, err)

		require.NoError(t, f.svc.DeletePhoto(photo.ID, models.Actor{ID: 1, Role: models.RoleUser}))

		tag, err := f.tagRepo.GetByName("dog")
		require.NoError(t, err)
		assert.Equal(t, "dog", tag.Name)
	})

	t.Run("stranger_denied", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)

		err := f.svc.DeletePhoto(photo.ID, models.Actor{ID: 2, Role: models.RoleUser})
		require.Error(t, err)
		assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
	})

	t.Run("moderator_may_delete", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)

		require.NoError(t, f.svc.DeletePhoto(photo.ID, models.Actor{ID: 2, Role: models.RoleModerator}))
	})

	t.Run("missing_photo", func(t *testing.T) {
		f := newPhotoService(t)
		err := f.svc.DeletePhoto(999, models.Actor{ID: 1, Role: models.RoleUser})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestUpdateDescription(t *testing.T) {
	f := newPhotoService(t)
	photo := createPhoto(t, f.photoRepo, 1)

	t.Run("owner_may_update", func(t *testing.T) {
		updated, err := f.svc.UpdateDescription(photo.ID, models.Actor{ID: 1, Role: models.RoleUser}, "new text")
		require.NoError(t, err)
		assert.Equal(t, "new text", updated.Description)
	})

	t.Run("stranger_denied", func(t *testing.T) {
		_, err := f.svc.UpdateDescription(photo.ID, models.Actor{ID: 2, Role: models.RoleUser}, "nope")
		require.Error(t, err)
		assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
	})
}

func TestTransformPhoto(t *testing.T) {
	t.Run("persists_transformed_url", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)

		transformed, err := f.svc.TransformPhoto(photo.ID, models.Actor{ID: 1, Role: models.RoleUser}, 45)
		require.NoError(t, err)
		assert.NotEmpty(t, transformed.TransformedURL)

		stored, err := f.photoRepo.GetByID(photo.ID)
		require.NoError(t, err)
		assert.Equal(t, transformed.TransformedURL, stored.TransformedURL)
	})

	t.Run("media_failure", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)
		f.media.transformErr = errUpstream

		_, err := f.svc.TransformPhoto(photo.ID, models.Actor{ID: 1, Role: models.RoleUser}, 45)
		require.Error(t, err)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", apperr.As(err).Code)

		stored, err := f.photoRepo.GetByID(photo.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.TransformedURL)
	})

	t.Run("stranger_denied", func(t *testing.T) {
		f := newPhotoService(t)
		photo := createPhoto(t, f.photoRepo, 1)

		_, err := f.svc.TransformPhoto(photo.ID, models.Actor{ID: 2, Role: models.RoleUser}, 90)
		require.Error(t, err)
		assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
	})
}
