package userControllers

import (
	"errors"
	"net/http"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateUserRequest is the admin edit form; absent fields keep their value.
// Role changes happen here, this is how an admin is promoted.
type UpdateUserRequest struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
	Role    *models.Role    `json:"role"`
}

// GET /api/users (admin)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "phone", "role", "created_at"). // Select only public fields
			Order("created_at desc").
			Find(&users).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, users)
	}
}

// GET /api/users/:id (admin)
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("user not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, user)
	}
}

// PUT /api/users/:id (admin)
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("user not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil && *req.Email != user.Email {
			var count int64
			if err := db.Model(&models.User{}).
				Where("email = ? AND id <> ?", *req.Email, user.ID).
				Count(&count).Error; err != nil {
				httpapi.Fail(c, httpapi.Persistence(err))
				return
			}
			if count > 0 {
				httpapi.Fail(c, httpapi.Conflict("user with this email already exists"))
				return
			}
			user.Email = *req.Email
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Address != nil {
			user.Address = *req.Address
		}
		if req.Role != nil {
			if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
				httpapi.Fail(c, httpapi.Validation("unknown role"))
				return
			}
			user.Role = *req.Role
		}

		if err := db.Save(&user).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, user)
	}
}

// DELETE /api/users/:id (admin)
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.User{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			httpapi.Fail(c, httpapi.Persistence(res.Error))
			return
		}
		if res.RowsAffected == 0 {
			httpapi.Fail(c, httpapi.NotFound("user not found"))
			return
		}
		httpapi.OK(c, http.StatusOK, gin.H{"message": "user deleted"})
	}
}
