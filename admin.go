package main

import (
	"net/http"
	"strconv"

	"photogallery/models"

	"github.com/gin-gonic/gin"
)

// Admin user management. Every route in this group already passed
// AuthenticateToken and RequireAdmin.

func (a *App) listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := a.db.Order("id asc").Limit(500).Find(&users).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching users", err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"role":      u.Role,
			"active":    u.Active,
			"createdAt": u.CreatedAt,
		})
	}
	respondOK(c, http.StatusOK, "Users retrieved successfully", out)
}

func (a *App) updateUserRoleHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidRole(req.Role) {
		respondFail(c, http.StatusBadRequest, "Role must be one of admin, photographer, client", err)
		return
	}
	var user models.User
	if err := a.db.First(&user, uint(id)).Error; err != nil {
		respondFail(c, http.StatusNotFound, "User not found", err)
		return
	}
	if err := a.db.Model(&user).Update("role", req.Role).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to update role", err)
		return
	}
	respondOK(c, http.StatusOK, "User role updated successfully", gin.H{
		"id":   user.ID,
		"role": req.Role,
	})
}

// deactivateUserHandler disables the account and revokes its sessions instead
// of hard-deleting, matching the session lifecycle everywhere else.
func (a *App) deactivateUserHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	var user models.User
	if err := a.db.First(&user, uint(id)).Error; err != nil {
		respondFail(c, http.StatusNotFound, "User not found", err)
		return
	}
	if err := a.db.Model(&user).Update("active", false).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to deactivate user", err)
		return
	}
	if err := a.db.Model(&models.Session{}).Where("user_id = ?", user.ID).
		Update("is_active", false).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to revoke sessions", err)
		return
	}
	respondOK(c, http.StatusOK, "User deactivated successfully", nil)
}
