package routes

import (
	authControllers "github.com/drkhamzat/bizon/controllers/auth"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.RegisterHandler(db))
		authGroup.POST("/login", authControllers.LoginHandler(db))

		profile := authGroup.Group("/profile")
		profile.Use(middleware.RequireAuth(db))
		{
			profile.GET("", authControllers.GetProfileHandler(db))
			profile.PUT("", authControllers.UpdateProfileHandler(db))
		}
	}
}
