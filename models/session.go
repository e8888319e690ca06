package models

import "time"

// Session stores a hashed representation of an issued refresh token so it can
// be rotated and revoked server-side. The raw token never touches the database.
type Session struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         uint      `gorm:"index;not null;index:idx_user_active" json:"userId"`
	TokenHash      string    `gorm:"size:128;not null;uniqueIndex" json:"-"`
	ExpiresAt      time.Time `gorm:"index;not null" json:"expiresAt"`
	IsActive       bool      `gorm:"default:true;index:idx_user_active" json:"isActive"`
	UserAgent      string    `gorm:"size:512" json:"userAgent"`
	IPAddress      string    `gorm:"size:64" json:"ipAddress"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// Expired reports whether the session's expiry has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
