package main

import (
	"net/http"
	"strconv"

	"photogallery/models"

	"github.com/gin-gonic/gin"
)

// canManageGallery reports whether the identity may mutate the gallery.
func canManageGallery(claims *Claims, g *models.Gallery) bool {
	return claims != nil && (claims.UserID == g.PhotographerID || claims.Role == models.RoleAdmin)
}

// canViewGallery additionally admits the client the gallery was delivered to.
func canViewGallery(claims *Claims, g *models.Gallery) bool {
	if g.IsPublic {
		return true
	}
	if claims == nil {
		return false
	}
	return claims.UserID == g.PhotographerID || claims.UserID == g.ClientID || claims.Role == models.RoleAdmin
}

func (a *App) listGalleriesHandler(c *gin.Context) {
	claims, _ := claimsFrom(c)
	q := a.db.Model(&models.Gallery{})
	switch {
	case claims == nil:
		q = q.Where("is_public = ?", true)
	case claims.Role != models.RoleAdmin:
		q = q.Where("is_public = ? OR photographer_id = ? OR client_id = ?", true, claims.UserID, claims.UserID)
	}
	var galleries []models.Gallery
	if err := q.Order("id desc").Limit(200).Find(&galleries).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching galleries", err)
		return
	}
	respondOK(c, http.StatusOK, "Galleries retrieved successfully", galleries)
}

func (a *App) getGalleryHandler(c *gin.Context) {
	var gallery models.Gallery
	if err := a.db.Preload("Photos").First(&gallery, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Gallery not found", err)
		return
	}
	claims, _ := claimsFrom(c)
	if !canViewGallery(claims, &gallery) {
		respondErr(c, errNotOwner)
		return
	}
	respondOK(c, http.StatusOK, "Gallery retrieved successfully", gallery)
}

func (a *App) createGalleryHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ClientID    uint   `json:"clientId"`
		CoverURL    string `json:"coverUrl"`
		IsPublic    bool   `json:"isPublic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Title == "" || req.ClientID == 0 {
		respondFail(c, http.StatusBadRequest, "Title and Client ID are required", nil)
		return
	}
	var client models.User
	if err := a.db.First(&client, req.ClientID).Error; err != nil {
		respondFail(c, http.StatusBadRequest, "Client does not exist", err)
		return
	}
	gallery := models.Gallery{
		Title:          req.Title,
		Description:    req.Description,
		PhotographerID: claims.UserID,
		ClientID:       req.ClientID,
		CoverURL:       req.CoverURL,
		IsPublic:       req.IsPublic,
	}
	if err := a.db.Create(&gallery).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error creating gallery", err)
		return
	}
	respondOK(c, http.StatusCreated, "Gallery created successfully", gallery)
}

func (a *App) updateGalleryHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var gallery models.Gallery
	if err := a.db.First(&gallery, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Gallery not found", err)
		return
	}
	if !canManageGallery(claims, &gallery) {
		respondErr(c, errNotOwner)
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ClientID    *uint   `json:"clientId"`
		CoverURL    *string `json:"coverUrl"`
		IsPublic    *bool   `json:"isPublic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			respondFail(c, http.StatusBadRequest, "Title and Client ID are required", nil)
			return
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ClientID != nil && *req.ClientID != 0 {
		updates["client_id"] = *req.ClientID
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if len(updates) > 0 {
		if err := a.db.Model(&gallery).Updates(updates).Error; err != nil {
			respondFail(c, http.StatusInternalServerError, "Error updating gallery", err)
			return
		}
	}
	respondOK(c, http.StatusOK, "Gallery updated successfully", gallery)
}

func (a *App) deleteGalleryHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var gallery models.Gallery
	if err := a.db.First(&gallery, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Gallery not found", err)
		return
	}
	if !canManageGallery(claims, &gallery) {
		respondErr(c, errNotOwner)
		return
	}
	// detach photos, then soft-delete the gallery
	if err := a.db.Model(&models.Photo{}).Where("gallery_id = ?", gallery.ID).
		Update("gallery_id", nil).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error deleting gallery", err)
		return
	}
	if err := a.db.Delete(&gallery).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error deleting gallery", err)
		return
	}
	respondOK(c, http.StatusOK, "Gallery deleted successfully", nil)
}

// listClientGalleriesHandler is guarded by RequireOwner on the userId param:
// a client sees their own deliveries, admin sees anyone's.
func (a *App) listClientGalleriesHandler(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid client id", err)
		return
	}
	var galleries []models.Gallery
	if err := a.db.Where("client_id = ?", uint(clientID)).
		Order("id desc").Find(&galleries).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching client galleries", err)
		return
	}
	respondOK(c, http.StatusOK, "Client galleries retrieved successfully", galleries)
}

func (a *App) listClientsHandler(c *gin.Context) {
	var clients []models.User
	if err := a.db.Where("role = ? AND active = ?", models.RoleClient, true).
		Order("name asc").Find(&clients).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching clients", err)
		return
	}
	out := make([]gin.H, 0, len(clients))
	for _, u := range clients {
		out = append(out, gin.H{"id": u.ID, "email": u.Email, "name": u.Name})
	}
	respondOK(c, http.StatusOK, "Clients retrieved successfully", out)
}
