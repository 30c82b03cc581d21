package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kjedmeade/orange-blossom-app/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authHandler *AuthHandler, profileHandler *ProfileHandler, ideaHandler *IdeaHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)

	// Auth routes (protected)
	authed := api.Group("/auth")
	authed.Use(authMiddleware.Authenticate())
	authed.GET("/me", authHandler.Me)
	authed.POST("/logout", authHandler.Logout)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/avatar", profileHandler.UploadAvatar)
	profile.DELETE("/avatar", profileHandler.DeleteAvatar)

	// Public profile lookup (protected)
	profiles := api.Group("/profiles")
	profiles.Use(authMiddleware.Authenticate())
	profiles.GET("/:username", profileHandler.GetProfileByUsername)

	// Idea routes (protected)
	ideas := api.Group("/ideas")
	ideas.Use(authMiddleware.Authenticate())
	ideas.GET("", ideaHandler.ListIdeas)
	ideas.POST("", ideaHandler.CreateIdea)
	ideas.GET("/:id", ideaHandler.GetIdea)
	ideas.PUT("/:id", ideaHandler.UpdateIdea)
	ideas.DELETE("/:id", ideaHandler.DeleteIdea)
}
