package repository

import (
	"errors"

	"github.com/pawprints/pawprints-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTagLimitExceeded is returned when a tag batch would push a photo past
// the configured maximum. The batch is rolled back as a whole.
var ErrTagLimitExceeded = errors.New("tag limit exceeded")

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}

// ResolveOrCreate returns the tag with the given (already normalized) name,
// creating it on first use. A concurrent create of the same name loses the
// unique-index race and resolves to the winner instead of failing.
func (r *TagRepository) ResolveOrCreate(name string) (*models.Tag, error) {
	return resolveOrCreate(r.db, name)
}

// resolveOrCreate must stay usable inside a surrounding transaction, so the
// racy insert avoids the conflict instead of catching it: a raised unique
// violation would abort the whole postgres transaction.
func resolveOrCreate(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race, another request created it first.
		var winner models.Tag
		if err := tx.Where("name = ?", name).First(&winner).Error; err != nil {
			return nil, err
		}
		return &winner, nil
	}
	return &tag, nil
}

// Rename surfaces gorm.ErrDuplicatedKey when the new name collides with a
// different tag; the caller reports that as a conflict.
func (r *TagRepository) Rename(id uint, name string) (*models.Tag, error) {
	tag, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	if err := r.db.Save(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *TagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM photo_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *TagRepository) GetPhotoTags(photoID uint) ([]models.Tag, error) {
	return photoTags(r.db, photoID)
}

func photoTags(tx *gorm.DB, photoID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := tx.
		Joins("JOIN photo_tags ON photo_tags.tag_id = tags.id").
		Where("photo_tags.photo_id = ?", photoID).
		Find(&tags).Error
	return tags, err
}

// AddTagsToPhoto associates the given (normalized, deduplicated) names with
// a photo in a single transaction. The resulting distinct tag count is
// checked before anything is written; on overflow the whole batch fails
// with ErrTagLimitExceeded. Association inserts lost to a concurrent
// request resolve to the already-present row via ON CONFLICT DO NOTHING,
// which keeps the transaction alive on postgres.
func (r *TagRepository) AddTagsToPhoto(photoID uint, names []string, maxTags int) ([]models.Tag, error) {
	var result []models.Tag

	err := r.db.Transaction(func(tx *gorm.DB) error {
		existing, err := photoTags(tx, photoID)
		if err != nil {
			return err
		}

		have := make(map[string]bool, len(existing))
		for _, t := range existing {
			have[t.Name] = true
		}

		total := len(existing)
		for _, name := range names {
			if !have[name] {
				total++
			}
		}
		if total > maxTags {
			return ErrTagLimitExceeded
		}

		for _, name := range names {
			tag, err := resolveOrCreate(tx, name)
			if err != nil {
				return err
			}

			if !have[name] {
				err := tx.Exec(
					"INSERT INTO photo_tags (photo_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
					photoID, tag.ID,
				).Error
				if err != nil {
					return err
				}
				have[name] = true
			}

			result = append(result, *tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
