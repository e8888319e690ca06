package main

import (
	"fmt"
	"strings"
	"time"

	"photogallery/models"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates a user with a bcrypt-hashed password. Input shape
// (email format, password length) is enforced by ValidateAuthInput upstream.
func (a *App) RegisterUser(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	// pre-check existing (optimistic)
	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RolePhotographer,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after initial check
			return nil, fmt.Errorf("user already exists")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials and returns the user. The error is the
// same regardless of which check failed.
func (a *App) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := a.db.Where("email = ? AND active = ?", email, true).First(&user).Error; err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &user, nil
}

// issueTokens signs an access and a refresh token for the user and records a
// session row holding the refresh token's hash.
func (a *App) issueTokens(user *models.User, userAgent, ip string) (access, refresh string, err error) {
	access, err = signToken(a.cfg.JWTSecret, user.ID, user.Email, user.Role, a.cfg.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(a.cfg.JWTRefreshSecret, user.ID, user.Email, user.Role, a.cfg.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	session := models.Session{
		UserID:         user.ID,
		TokenHash:      hashToken(refresh),
		ExpiresAt:      now.Add(a.cfg.RefreshTokenTTL),
		IsActive:       true,
		UserAgent:      userAgent,
		IPAddress:      ip,
		LastActivityAt: now,
	}
	if err := a.db.Create(&session).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// lookupSession finds the session row for a raw refresh token.
func (a *App) lookupSession(rawToken string) (*models.Session, error) {
	var session models.Session
	if err := a.db.Where("token_hash = ?", hashToken(rawToken)).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// rotateSession deactivates the old session row and issues a fresh token pair.
// Called from the refresh handler after the session has been validated.
func (a *App) rotateSession(old *models.Session, user *models.User, userAgent, ip string) (access, refresh string, err error) {
	if err := a.db.Model(old).Updates(map[string]interface{}{
		"is_active":        false,
		"last_activity_at": time.Now(),
	}).Error; err != nil {
		return "", "", err
	}
	return a.issueTokens(user, userAgent, ip)
}

// revokeSession marks a session inactive. Idempotent.
func (a *App) revokeSession(session *models.Session) error {
	return a.db.Model(session).Updates(map[string]interface{}{
		"is_active":        false,
		"last_activity_at": time.Now(),
	}).Error
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
