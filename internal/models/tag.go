package models

import (
	"time"
)

// Tag names are stored normalized (trimmed, lower-case) and are unique.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

type RenameTagRequest struct {
	Name string `json:"name" validate:"required"`
}
