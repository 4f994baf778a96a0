package service_test

import (
	"testing"
	"time"

	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/internal/repository"
	"github.com/pawprints/pawprints-backend/internal/service"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTagService(t *testing.T) (*service.TagService, *repository.TagRepository, *repository.PhotoRepository) {
	t.Helper()
	db := newTestDB(t)
	tagRepo := repository.NewTagRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	return service.NewTagService(tagRepo, photoRepo, testConfig()), tagRepo, photoRepo
}

func tagNames(t *testing.T, svc *service.TagService, photoID uint) []string {
	t.Helper()
	tags, err := svc.GetPhotoTags(photoID)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestAddTagsToPhoto_NormalizesAndDeduplicates(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	tags, err := svc.AddTagsToPhoto(photo.ID, []string{"Cat", "cat", "  CAT  "})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "cat", tags[0].Name)

	assert.ElementsMatch(t, []string{"cat"}, tagNames(t, svc, photo.ID))
}

func TestAddTagsToPhoto_Idempotent(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	_, err := svc.AddTagsToPhoto(photo.ID, []string{"dog", "cat"})
	require.NoError(t, err)

	_, err = svc.AddTagsToPhoto(photo.ID, []string{"dog", "cat"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"dog", "cat"}, tagNames(t, svc, photo.ID))
}

func TestAddTagsToPhoto_SharedTagAcrossPhotos(t *testing.T) {
	svc, tagRepo, photoRepo := newTagService(t)
	p1 := createPhoto(t, photoRepo, 1)
	p2 := createPhoto(t, photoRepo, 2)

	_, err := svc.AddTagsToPhoto(p1.ID, []string{"sunset"})
	require.NoError(t, err)
	_, err = svc.AddTagsToPhoto(p2.ID, []string{"Sunset"})
	require.NoError(t, err)

	// One tag row, referenced by both photos.
	tags, err := tagRepo.List()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "sunset", tags[0].Name)
}

func TestAddTagsToPhoto_LimitIsAllOrNothing(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	// Duplicate in the batch collapses before counting.
	_, err := svc.AddTagsToPhoto(photo.ID, []string{"dog", "cat", "dog"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dog", "cat"}, tagNames(t, svc, photo.ID))

	// 2 existing + 4 new would total 6.
	_, err = svc.AddTagsToPhoto(photo.ID, []string{"a", "b", "c", "d"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOO_MANY_TAGS", ae.Code)

	// Nothing was written.
	assert.ElementsMatch(t, []string{"dog", "cat"}, tagNames(t, svc, photo.ID))
}

func TestAddTagsToPhoto_ExactlyAtLimit(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	_, err := svc.AddTagsToPhoto(photo.ID, []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Len(t, tagNames(t, svc, photo.ID), 5)

	_, err = svc.AddTagsToPhoto(photo.ID, []string{"f"})
	require.Error(t, err)
	assert.Equal(t, "TOO_MANY_TAGS", apperr.As(err).Code)

	// Re-adding existing tags still succeeds at the limit.
	_, err = svc.AddTagsToPhoto(photo.ID, []string{"a", "e"})
	require.NoError(t, err)
}

func TestAddTagsToPhoto_PhotoNotFound(t *testing.T) {
	svc, _, _ := newTagService(t)

	_, err := svc.AddTagsToPhoto(999, []string{"cat"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestAddTagsToPhoto_EmptyInput(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	_, err := svc.AddTagsToPhoto(photo.ID, []string{"", "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestGetPhotoTags_EmptyIsNotAnError(t *testing.T) {
	svc, _, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	tags, err := svc.GetPhotoTags(photo.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.NotNil(t, tags)

	// A missing photo is NotFound, never an empty list.
	_, err = svc.GetPhotoTags(999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestResolveOrCreate_ReusesExistingTag(t *testing.T) {
	_, tagRepo, _ := newTagService(t)

	first, err := tagRepo.ResolveOrCreate("travel")
	require.NoError(t, err)
	second, err := tagRepo.ResolveOrCreate("travel")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

// raceOnTagCreate fires once, right before the first insert into tags, and
// commits rows the way a concurrent request that won the race would have.
// It runs on the same connection, so inside a batch transaction the rows
// land between the lookup and the insert.
func raceOnTagCreate(t *testing.T, db *gorm.DB, winner func(tx *gorm.DB)) *bool {
	t.Helper()

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("concurrent_winner", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "tags" {
			return
		}
		raced = true
		winner(tx.Session(&gorm.Session{NewDB: true}))
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Callback().Create().Remove("concurrent_winner"))
	})
	return &raced
}

func TestAddTagsToPhoto_LostCreateRaceResolvesToWinner(t *testing.T) {
	db := newTestDB(t)
	tagRepo := repository.NewTagRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	svc := service.NewTagService(tagRepo, photoRepo, testConfig())
	photo := createPhoto(t, photoRepo, 1)

	now := time.Now()
	raced := raceOnTagCreate(t, db, func(tx *gorm.DB) {
		require.NoError(t, tx.Exec(
			"INSERT INTO tags (name, created_at, updated_at) VALUES (?, ?, ?)",
			"cat", now, now,
		).Error)
	})

	tags, err := svc.AddTagsToPhoto(photo.ID, []string{"cat"})
	require.NoError(t, err)
	require.True(t, *raced)
	require.Len(t, tags, 1)
	assert.Equal(t, "cat", tags[0].Name)
	assert.NotZero(t, tags[0].ID)

	// The winner's row was reused, not duplicated.
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "cat").Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.ElementsMatch(t, []string{"cat"}, tagNames(t, svc, photo.ID))
}

func TestAddTagsToPhoto_LostAssociationRaceIsSuccess(t *testing.T) {
	db := newTestDB(t)
	tagRepo := repository.NewTagRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	svc := service.NewTagService(tagRepo, photoRepo, testConfig())
	photo := createPhoto(t, photoRepo, 1)

	// The concurrent request created the tag and attached it to the same
	// photo before this batch's inserts run.
	now := time.Now()
	raced := raceOnTagCreate(t, db, func(tx *gorm.DB) {
		require.NoError(t, tx.Exec(
			"INSERT INTO tags (id, name, created_at, updated_at) VALUES (501, ?, ?, ?)",
			"dog", now, now,
		).Error)
		require.NoError(t, tx.Exec(
			"INSERT INTO photo_tags (photo_id, tag_id) VALUES (?, 501)", photo.ID,
		).Error)
	})

	tags, err := svc.AddTagsToPhoto(photo.ID, []string{"dog"})
	require.NoError(t, err)
	require.True(t, *raced)
	require.Len(t, tags, 1)
	assert.EqualValues(t, 501, tags[0].ID)

	var count int64
	require.NoError(t, db.Table("photo_tags").Where("photo_id = ?", photo.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRenameTag(t *testing.T) {
	svc, tagRepo, _ := newTagService(t)

	tag, err := tagRepo.ResolveOrCreate("holiday")
	require.NoError(t, err)
	_, err = tagRepo.ResolveOrCreate("beach")
	require.NoError(t, err)

	t.Run("normalizes_new_name", func(t *testing.T) {
		renamed, err := svc.RenameTag(tag.ID, "  Vacation ")
		require.NoError(t, err)
		assert.Equal(t, "vacation", renamed.Name)
	})

	t.Run("collision_is_conflict", func(t *testing.T) {
		_, err := svc.RenameTag(tag.ID, "Beach")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("missing_tag_is_not_found", func(t *testing.T) {
		_, err := svc.RenameTag(999, "anything")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("empty_name_is_invalid", func(t *testing.T) {
		_, err := svc.RenameTag(tag.ID, "   ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestDeleteTag(t *testing.T) {
	svc, tagRepo, photoRepo := newTagService(t)
	photo := createPhoto(t, photoRepo, 1)

	_, err := svc.AddTagsToPhoto(photo.ID, []string{"temp", "keep"})
	require.NoError(t, err)

	tag, err := tagRepo.GetByName("temp")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(tag.ID))
	assert.ElementsMatch(t, []string{"keep"}, tagNames(t, svc, photo.ID))

	// Deleting again reports NotFound.
	err = svc.DeleteTag(tag.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestGetTagByName_Normalizes(t *testing.T) {
	svc, tagRepo, _ := newTagService(t)

	_, err := tagRepo.ResolveOrCreate("winter")
	require.NoError(t, err)

	tag, err := svc.GetTagByName("  WINTER ")
	require.NoError(t, err)
	assert.Equal(t, "winter", tag.Name)
}
