package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
	ParentID    *uint  `json:"parent_id"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Featured    *bool   `json:"featured"`
	ParentID    *uint   `json:"parent_id"`
}

// GET /api/categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, categories)
	}
}

// GET /api/categories/:idOrSlug
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idOrSlug := c.Param("idOrSlug")

		var category models.Category
		var err error
		if id, convErr := strconv.ParseUint(idOrSlug, 10, 64); convErr == nil {
			err = db.First(&category, uint(id)).Error
		} else {
			err = db.Where("slug = ?", idOrSlug).First(&category).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("category not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, category)
	}
}

// POST /api/categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}

		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		if count > 0 {
			httpapi.Fail(c, httpapi.Conflict("category with this name already exists"))
			return
		}

		slug, err := models.UniqueSlug(db, "categories", input.Name, 0)
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		category := models.Category{
			Name:        input.Name,
			Slug:        slug,
			Description: input.Description,
			Image:       input.Image,
			Featured:    input.Featured,
			ParentID:    input.ParentID,
		}
		if err := db.Create(&category).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusCreated, category)
	}
}

// PUT /api/categories/:id (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid category id"))
			return
		}

		var category models.Category
		if err := db.First(&category, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("category not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}

		if input.Name != nil && *input.Name != category.Name {
			slug, err := models.UniqueSlug(db, "categories", *input.Name, category.ID)
			if err != nil {
				httpapi.Fail(c, httpapi.Persistence(err))
				return
			}
			category.Name = *input.Name
			category.Slug = slug
		}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.Image != nil {
			category.Image = *input.Image
		}
		if input.Featured != nil {
			category.Featured = *input.Featured
		}
		if input.ParentID != nil {
			if *input.ParentID == category.ID {
				httpapi.Fail(c, httpapi.Validation("category cannot be its own parent"))
				return
			}
			category.ParentID = input.ParentID
		}

		if err := db.Save(&category).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, category)
	}
}

// DELETE /api/categories/:id (admin). Products in the category are kept and
// become uncategorized.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid category id"))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("category_id = ?", uint(id)).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Category{}, uint(id))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("category not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, gin.H{"message": "category deleted"})
	}
}
