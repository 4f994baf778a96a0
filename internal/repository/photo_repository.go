package repository

import (
	"github.com/pawprints/pawprints-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PhotoRepository) GetByUserID(userID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

func (r *PhotoRepository) UpdateTransformedURL(id uint, url string) error {
	return r.db.Model(&models.Photo{}).Where("id = ?", id).Update("transformed_url", url).Error
}

// Delete removes the photo row and its tag associations. Tags themselves
// are shared and never cascade-deleted.
func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM photo_tags WHERE photo_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, id).Error
	})
}
