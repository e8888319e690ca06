package models

import (
	"time"

	"github.com/lib/pq"
)

// Photo categories form a closed set; anything else is coerced to "other".
const (
	CategoryLandscape    = "landscape"
	CategoryPortrait     = "portrait"
	CategoryWildlife     = "wildlife"
	CategoryArchitecture = "architecture"
	CategoryMacro        = "macro"
	CategoryOther        = "other"
)

// ValidCategory reports whether name is one of the fixed photo categories.
func ValidCategory(name string) bool {
	switch name {
	case CategoryLandscape, CategoryPortrait, CategoryWildlife,
		CategoryArchitecture, CategoryMacro, CategoryOther:
		return true
	}
	return false
}

// CameraSettings is embedded into Photo (camera_* columns).
type CameraSettings struct {
	Camera       string `gorm:"size:128" json:"camera,omitempty"`
	Lens         string `gorm:"size:128" json:"lens,omitempty"`
	Aperture     string `gorm:"size:32" json:"aperture,omitempty"`
	ShutterSpeed string `gorm:"size:32" json:"shutterSpeed,omitempty"`
	ISO          int    `json:"iso,omitempty"`
	FocalLength  string `gorm:"size:32" json:"focalLength,omitempty"`
}

// Photo is the metadata record for an uploaded image.
type Photo struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `gorm:"index:idx_photographer_created" json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Title          string         `gorm:"size:100;not null" json:"title"`
	Description    string         `gorm:"size:500" json:"description"`
	ImageURL       string         `gorm:"size:512;not null" json:"imageUrl"`
	ThumbnailURL   string         `gorm:"size:512" json:"thumbnailUrl"`
	Category       string         `gorm:"size:32;not null;default:other;index" json:"category"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	PhotographerID uint           `gorm:"not null;index:idx_photographer_created" json:"photographerId"`
	Photographer   User           `gorm:"foreignKey:PhotographerID" json:"-"`
	GalleryID      *uint          `gorm:"index" json:"galleryId,omitempty"`
	Location       string         `gorm:"size:255" json:"location,omitempty"`
	CameraSettings CameraSettings `gorm:"embedded;embeddedPrefix:camera_" json:"cameraSettings"`
	Likes          int64          `gorm:"default:0;not null" json:"likes"`
	Views          int64          `gorm:"default:0;not null" json:"views"`
	IsPublished    bool           `gorm:"default:true;index:idx_featured_published" json:"isPublished"`
	Featured       bool           `gorm:"default:false;index:idx_featured_published" json:"featured"`
	Comments       []Comment      `gorm:"foreignKey:PhotoID" json:"comments,omitempty"`
}

// PhotoLike records one user's like of one photo. The composite unique index
// keeps the likes counter consistent with the join rows.
type PhotoLike struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	PhotoID   uint `gorm:"not null;uniqueIndex:idx_photo_user" json:"photoId"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_photo_user" json:"userId"`
}
