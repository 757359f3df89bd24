package routes

import (
	userControllers "github.com/drkhamzat/bizon/controllers/user"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the admin-only "/api/users" management endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	users.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		users.GET("", userControllers.GetAllUsers(db))
		users.GET("/:id", userControllers.GetUser(db))
		users.PUT("/:id", userControllers.UpdateUser(db))
		users.DELETE("/:id", userControllers.DeleteUser(db))
	}
}
