package main

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"photogallery/models"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadBytes = 10 * 1024 * 1024

// splitTags turns the comma-separated tags form field into a clean slice.
func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// uploadPhotoHandler accepts one multipart image plus its metadata fields and
// registers a Photo for the authenticated photographer.
func (a *App) uploadPhotoHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Image file is required", err)
		return
	}
	if file.Size >= maxUploadBytes {
		respondFail(c, http.StatusBadRequest, "File too large (max 10MB)", nil)
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		respondFail(c, http.StatusBadRequest, "Only image files are accepted", nil)
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		respondFail(c, http.StatusBadRequest, "Title is required", nil)
		return
	}
	if len(title) > 100 {
		respondFail(c, http.StatusBadRequest, "Title cannot be more than 100 characters", nil)
		return
	}
	description := strings.TrimSpace(c.PostForm("description"))
	if len(description) > 500 {
		respondFail(c, http.StatusBadRequest, "Description cannot be more than 500 characters", nil)
		return
	}
	category := c.PostForm("category")
	if !models.ValidCategory(category) {
		category = models.CategoryOther
	}
	isPublished := true
	if v := c.PostForm("isPublic"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			isPublished = parsed
		}
	}

	// store under uploads/<photographer-id>/ with a uuid prefix so duplicate
	// filenames never collide
	subDir := strconv.FormatUint(uint64(claims.UserID), 10)
	name := uuid.New().String() + "_" + filepath.Base(file.Filename)
	relPath := subDir + "/" + name
	fullPath := filepath.Join(a.cfg.UploadBaseDir, subDir, name)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to save file", err)
		return
	}

	imageURL := a.cfg.PublicBaseURL + "/public/" + relPath
	thumbURL := ""
	if thumbRel, err := makeThumbnail(fullPath, a.cfg.ThumbnailWidth); err == nil {
		thumbURL = a.cfg.PublicBaseURL + "/public/" + subDir + "/" + thumbRel
	}

	photo := models.Photo{
		Title:          title,
		Description:    description,
		ImageURL:       imageURL,
		ThumbnailURL:   thumbURL,
		Category:       category,
		Tags:           splitTags(c.PostForm("tags")),
		PhotographerID: claims.UserID,
		Location:       strings.TrimSpace(c.PostForm("location")),
		IsPublished:    isPublished,
	}
	if err := a.db.Create(&photo).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to save photo", err)
		return
	}
	respondOK(c, http.StatusCreated, "Photo uploaded successfully", gin.H{
		"photoId":      photo.ID,
		"url":          photo.ImageURL,
		"thumbnailUrl": photo.ThumbnailURL,
	})
}

// makeThumbnail writes a resized copy next to the original and returns its
// file name. A failure here is non-fatal; the photo just has no thumbnail.
func makeThumbnail(fullPath string, width int) (string, error) {
	img, err := imaging.Open(fullPath)
	if err != nil {
		return "", err
	}
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	dir, name := filepath.Split(fullPath)
	thumbName := "thumb_" + name
	if err := imaging.Save(img, filepath.Join(dir, thumbName)); err != nil {
		return "", err
	}
	return thumbName, nil
}

func (a *App) listPhotosHandler(c *gin.Context) {
	claims, _ := claimsFrom(c)
	q := a.db.Model(&models.Photo{})
	switch {
	case claims == nil:
		q = q.Where("is_published = ?", true)
	case claims.Role != models.RoleAdmin:
		q = q.Where("is_published = ? OR photographer_id = ?", true, claims.UserID)
	}
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if tag := c.Query("tag"); tag != "" {
		q = q.Where("? = ANY(tags)", tag)
	}
	if pid := c.Query("photographerId"); pid != "" {
		q = q.Where("photographer_id = ?", pid)
	}
	if c.Query("featured") == "true" {
		q = q.Where("featured = ?", true)
	}
	var photos []models.Photo
	if err := q.Order("created_at desc").Limit(200).Find(&photos).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching photos", err)
		return
	}
	respondOK(c, http.StatusOK, "Photos retrieved successfully", photos)
}

// getPhotoHandler returns one photo and counts the view.
func (a *App) getPhotoHandler(c *gin.Context) {
	var photo models.Photo
	if err := a.db.Preload("Comments").First(&photo, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Photo not found", err)
		return
	}
	claims, _ := claimsFrom(c)
	if !photo.IsPublished {
		if claims == nil || (claims.UserID != photo.PhotographerID && claims.Role != models.RoleAdmin) {
			respondErr(c, errNotOwner)
			return
		}
	}
	if err := a.db.Model(&photo).UpdateColumn("views", gorm.Expr("views + 1")).Error; err == nil {
		photo.Views++
	}
	respondOK(c, http.StatusOK, "Photo retrieved successfully", photo)
}

func (a *App) deletePhotoHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var photo models.Photo
	if err := a.db.First(&photo, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Photo not found", err)
		return
	}
	if claims.UserID != photo.PhotographerID && claims.Role != models.RoleAdmin {
		respondErr(c, errNotOwner)
		return
	}
	if err := a.db.Where("photo_id = ?", photo.ID).Delete(&models.PhotoLike{}).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error deleting photo", err)
		return
	}
	if err := a.db.Where("photo_id = ?", photo.ID).Delete(&models.Comment{}).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error deleting photo", err)
		return
	}
	if err := a.db.Delete(&photo).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error deleting photo", err)
		return
	}
	respondOK(c, http.StatusOK, "Photo deleted successfully", nil)
}

func (a *App) likePhotoHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var photo models.Photo
	if err := a.db.First(&photo, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Photo not found", err)
		return
	}
	like := models.PhotoLike{PhotoID: photo.ID, UserID: claims.UserID}
	res := a.db.Where("photo_id = ? AND user_id = ?", photo.ID, claims.UserID).FirstOrCreate(&like)
	if res.Error != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to like photo", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		a.db.Model(&photo).UpdateColumn("likes", gorm.Expr("likes + 1"))
		photo.Likes++
	}
	respondOK(c, http.StatusOK, "Photo liked", gin.H{"likes": photo.Likes})
}

func (a *App) unlikePhotoHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var photo models.Photo
	if err := a.db.First(&photo, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Photo not found", err)
		return
	}
	res := a.db.Where("photo_id = ? AND user_id = ?", photo.ID, claims.UserID).
		Delete(&models.PhotoLike{})
	if res.Error != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to unlike photo", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		// floor at zero even if counters drifted
		a.db.Model(&photo).UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)"))
		if photo.Likes > 0 {
			photo.Likes--
		}
	}
	respondOK(c, http.StatusOK, "Photo unliked", gin.H{"likes": photo.Likes})
}

func (a *App) listCommentsHandler(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid photo id", err)
		return
	}
	var comments []models.Comment
	if err := a.db.Where("photo_id = ?", uint(photoID)).
		Order("created_at asc").Find(&comments).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Error fetching comments", err)
		return
	}
	respondOK(c, http.StatusOK, "Comments retrieved successfully", comments)
}

func (a *App) createCommentHandler(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondErr(c, errNotAuthenticated)
		return
	}
	var photo models.Photo
	if err := a.db.First(&photo, c.Param("id")).Error; err != nil {
		respondFail(c, http.StatusNotFound, "Photo not found", err)
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		respondFail(c, http.StatusBadRequest, "Comment body is required", err)
		return
	}
	if len(req.Body) > 1000 {
		respondFail(c, http.StatusBadRequest, "Comment cannot be more than 1000 characters", nil)
		return
	}
	comment := models.Comment{PhotoID: photo.ID, UserID: claims.UserID, Body: strings.TrimSpace(req.Body)}
	if err := a.db.Create(&comment).Error; err != nil {
		respondFail(c, http.StatusInternalServerError, "Failed to create comment", err)
		return
	}
	respondOK(c, http.StatusCreated, "Comment created successfully", comment)
}
