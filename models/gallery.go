package models

import (
	"time"

	"gorm.io/gorm"
)

// Gallery groups photos a photographer delivers to a client.
type Gallery struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"size:1000" json:"description"`
	PhotographerID uint           `gorm:"index;not null" json:"photographerId"`
	Photographer   User           `gorm:"foreignKey:PhotographerID" json:"-"`
	ClientID       uint           `gorm:"index;not null" json:"clientId"`
	Client         User           `gorm:"foreignKey:ClientID" json:"-"`
	CoverURL       string         `gorm:"size:512" json:"coverUrl,omitempty"`
	IsPublic       bool           `gorm:"default:false;index" json:"isPublic"`
	Photos         []Photo        `gorm:"foreignKey:GalleryID" json:"photos,omitempty"`
}
