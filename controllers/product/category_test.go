package productcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func categoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/categories", GetAllCategories(db))
	r.GET("/categories/:idOrSlug", GetCategoryHandler(db))
	r.POST("/categories", CreateCategory(db))
	r.PUT("/categories/:id", UpdateCategory(db))
	r.DELETE("/categories/:id", DeleteCategory(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)

	w := doJSON(t, r, http.MethodPost, "/categories", CategoryInput{Name: "Кресла", Description: "мягкие"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success bool            `json:"success"`
		Data    models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "кресла", created.Data.Slug)

	// Lookup works by id and by slug.
	w = doJSON(t, r, http.MethodGet, "/categories/кресла", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Duplicate names conflict.
	w = doJSON(t, r, http.MethodPost, "/categories", CategoryInput{Name: "Кресла"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Rename re-derives the slug.
	newName := "Кресла и пуфы"
	w = doJSON(t, r, http.MethodPut, "/categories/1", UpdateCategoryInput{Name: &newName})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/categories/кресла-и-пуфы", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/categories/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryCannotBeOwnParent(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)

	w := doJSON(t, r, http.MethodPost, "/categories", CategoryInput{Name: "Спальня"})
	require.Equal(t, http.StatusCreated, w.Code)

	self := uint(1)
	w = doJSON(t, r, http.MethodPut, "/categories/1", UpdateCategoryInput{ParentID: &self})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryKeepsProducts(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)

	category := models.Category{Name: "Гостиная", Slug: "гостиная"}
	require.NoError(t, db.Create(&category).Error)

	input := productInput("Тумба", 5000)
	input.CategoryID = &category.ID
	product, err := CreateProduct(db, input)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/categories/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The product survives, uncategorized.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}

func TestDeleteMissingCategory(t *testing.T) {
	db := setupTestDB(t)
	r := categoryRouter(db)

	w := doJSON(t, r, http.MethodDelete, "/categories/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
