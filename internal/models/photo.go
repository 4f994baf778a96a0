package models

import (
	"time"
)

type Photo struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	PublicID       string    `json:"public_id" gorm:"not null"`
	URL            string    `json:"url" gorm:"not null"`
	TransformedURL string    `json:"transformed_url"`
	R2Key          string    `json:"r2_key" gorm:"not null"`
	FileName       string    `json:"file_name"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	Description    string    `json:"description"`
	Tags           []Tag     `json:"tags" gorm:"many2many:photo_tags;"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UpdatePhotoRequest struct {
	Description string `json:"description" validate:"required"`
}

type PhotoResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	URL            string    `json:"url"`
	TransformedURL string    `json:"transformed_url,omitempty"`
	Description    string    `json:"description"`
	Tags           []Tag     `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewPhotoResponse(photo *Photo, tags []Tag) PhotoResponse {
	if tags == nil {
		tags = []Tag{}
	}
	return PhotoResponse{
		ID:             photo.ID,
		UserID:         photo.UserID,
		URL:            photo.URL,
		TransformedURL: photo.TransformedURL,
		Description:    photo.Description,
		Tags:           tags,
		CreatedAt:      photo.CreatedAt,
	}
}
