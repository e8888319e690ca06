package main

import (
	"net/http"
	"strconv"

	"photogallery/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (a *App) registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := a.RegisterUser(req.Email, req.Password, req.Name)
	if err != nil {
		respondFail(c, http.StatusConflict, "Registration failed", err)
		return
	}
	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (a *App) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := a.Authenticate(req.Email, req.Password)
	if err != nil {
		respondFail(c, http.StatusUnauthorized, "Invalid email or password", err)
		return
	}
	access, refresh, err := a.issueTokens(user, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to generate tokens", err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token":        access,
		"refreshToken": refresh,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// refreshHandler runs after VerifyRefreshToken. The middleware only proves
// the token's signature; revocation is enforced here against the session
// store, so a logged-out refresh token is rejected even while unexpired.
func (a *App) refreshHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	raw := c.GetString("refreshToken")
	session, err := a.lookupSession(raw)
	if err != nil || !session.IsActive || session.Expired() {
		respondErr(c, errInvalidRefreshToken)
		return
	}
	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil || !user.Active {
		respondErr(c, errInvalidRefreshToken)
		return
	}
	access, refresh, err := a.rotateSession(session, &user, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to rotate refresh token", err)
		return
	}
	respondOK(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"token":        access,
		"refreshToken": refresh,
	})
}

func (a *App) logoutHandler(c *gin.Context) {
	raw := c.GetString("refreshToken")
	session, err := a.lookupSession(raw)
	if err != nil {
		// token verified but unknown to the store; nothing to revoke
		respondOK(c, http.StatusOK, "Logged out", nil)
		return
	}
	if err := a.revokeSession(session); err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to revoke session", err)
		return
	}
	respondOK(c, http.StatusOK, "Logged out", nil)
}

func (a *App) meHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		respondFail(c, http.StatusNotFound, "User not found", err)
		return
	}
	respondOK(c, http.StatusOK, "User retrieved successfully", gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func (a *App) listSessionsHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var sessions []models.Session
	if err := a.db.Where("user_id = ? AND is_active = ?", claims.UserID, true).
		Order("last_activity_at desc").Find(&sessions).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}
	respondOK(c, http.StatusOK, "Sessions retrieved successfully", sessions)
}

func (a *App) revokeSessionHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid session id", err)
		return
	}
	var session models.Session
	if err := a.db.First(&session, uint(id)).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Session not found", err)
		return
	}
	if session.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		respondErr(c, errNotOwner)
		return
	}
	if err := a.revokeSession(&session); err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to revoke session", err)
		return
	}
	respondOK(c, http.StatusOK, "Session revoked", nil)
}
