package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App wires the configuration and database handle into every handler and
// middleware. There are no package-level globals; main builds one App and
// hands it to the router.
type App struct {
	cfg *Config
	db  *gorm.DB
}

func NewApp(cfg *Config, db *gorm.DB) *App {
	return &App{cfg: cfg, db: db}
}

func (a *App) SetupRoutes(r *gin.Engine) {
	r.Static("/public", a.cfg.UploadBaseDir)

	auth := r.Group("/api/auth")
	auth.POST("/register", a.ValidateAuthInput(), a.registerHandler)
	auth.POST("/login", a.ValidateAuthInput(), a.loginHandler)
	auth.POST("/refresh", a.VerifyRefreshToken(), a.refreshHandler)
	auth.POST("/logout", a.VerifyRefreshToken(), a.logoutHandler)
	auth.GET("/me", a.AuthenticateToken(), a.meHandler)
	auth.GET("/sessions", a.AuthenticateToken(), a.listSessionsHandler)
	auth.DELETE("/sessions/:id", a.AuthenticateToken(), a.revokeSessionHandler)

	galleries := r.Group("/api/galleries")
	galleries.GET("", a.OptionalAuth(), a.listGalleriesHandler)
	galleries.GET("/clients/list", a.AuthenticateToken(), a.RequireAdmin(), a.listClientsHandler)
	galleries.GET("/client/:userId", a.AuthenticateToken(), a.RequireOwner(), a.listClientGalleriesHandler)
	galleries.GET("/:id", a.OptionalAuth(), a.getGalleryHandler)
	galleries.POST("", a.AuthenticateToken(), a.createGalleryHandler)
	galleries.PUT("/:id", a.AuthenticateToken(), a.updateGalleryHandler)
	galleries.DELETE("/:id", a.AuthenticateToken(), a.deleteGalleryHandler)

	photos := r.Group("/api/photos")
	photos.POST("/upload", a.AuthenticateToken(), a.uploadPhotoHandler)
	photos.GET("", a.OptionalAuth(), a.listPhotosHandler)
	photos.GET("/:id", a.OptionalAuth(), a.getPhotoHandler)
	photos.DELETE("/:id", a.AuthenticateToken(), a.deletePhotoHandler)
	photos.POST("/:id/like", a.AuthenticateToken(), a.likePhotoHandler)
	photos.DELETE("/:id/like", a.AuthenticateToken(), a.unlikePhotoHandler)
	photos.GET("/:id/comments", a.listCommentsHandler)
	photos.POST("/:id/comments", a.AuthenticateToken(), a.createCommentHandler)

	admin := r.Group("/api/admin", a.AuthenticateToken(), a.RequireAdmin())
	admin.GET("/users", a.listUsersHandler)
	admin.PUT("/users/:userId/role", a.updateUserRoleHandler)
	admin.DELETE("/users/:userId", a.deactivateUserHandler)
}
