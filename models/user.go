package models

import (
	"time"
)

// Role names carried in JWT claims and checked by the authorization middleware.
const (
	RoleAdmin        = "admin"
	RolePhotographer = "photographer"
	RoleClient       = "client"
)

// User model
type User struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`
	Email        string     `gorm:"size:255;not null;unique"`
	PasswordHash []byte     `gorm:"not null" json:"-"`
	Name         string     `gorm:"size:255"`
	Role         string     `gorm:"size:32;not null;default:photographer"`
	Active       bool       `gorm:"default:true;not null"`
	Photos       []Photo    `gorm:"foreignKey:PhotographerID"`
	Sessions     []Session  `gorm:"foreignKey:UserID"`
}

// ValidRole reports whether name belongs to the closed role set.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RolePhotographer, RoleClient:
		return true
	}
	return false
}
