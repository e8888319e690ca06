package models

import "time"

// Comment on a photo.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	PhotoID   uint      `gorm:"index;not null" json:"photoId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Body      string    `gorm:"size:1000;not null" json:"body"`
}
