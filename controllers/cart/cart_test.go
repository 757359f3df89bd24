package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drkhamzat/bizon/cart"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	m := cart.NewManager(cart.NewMemoryStore())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cart", GetCartHandler(m))
	r.POST("/cart", AddItemHandler(db, m))
	r.PUT("/cart/:productId", UpdateQuantityHandler(m))
	r.DELETE("/cart/:productId", RemoveItemHandler(m))
	r.DELETE("/cart", ClearCartHandler(m))
	return r, db
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	p := models.Product{
		Name:   "Диван Премиум",
		Slug:   "диван-премиум",
		Price:  45000,
		Images: []string{"/uploads/sofa.jpg"},
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func do(t *testing.T, r *gin.Engine, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Cart-Session", session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartFrom(t *testing.T, w *httptest.ResponseRecorder) cart.Cart {
	var resp struct {
		Success bool      `json:"success"`
		Data    cart.Cart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestGuestCartRequiresSessionHeader(t *testing.T) {
	r, _ := setupTest(t)
	w := do(t, r, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddSnapshotsPriceAndImage(t *testing.T) {
	r, db := setupTest(t)
	p := seedProduct(t, db)

	w := do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	c := cartFrom(t, w)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 45000.0, c.Items[0].Price)
	assert.Equal(t, "/uploads/sofa.jpg", c.Items[0].Image)
	assert.Equal(t, 2, c.Items[0].Quantity)

	// Adding again sums quantities even after a catalog price change.
	require.NoError(t, db.Model(&p).Update("price", 50000).Error)
	w = do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	c = cartFrom(t, w)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 45000.0, c.Items[0].Price)
}

func TestAddChargesDiscountedPrice(t *testing.T) {
	r, db := setupTest(t)
	p := models.Product{
		Name:     "Кресло Уют",
		Slug:     "кресло-уют",
		Price:    1000,
		Discount: 20,
	}
	require.NoError(t, db.Create(&p).Error)

	w := do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	c := cartFrom(t, w)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 800.0, c.Items[0].Price)
}

func TestAddUnknownProduct(t *testing.T) {
	r, _ := setupTest(t)
	w := do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: 99, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRemoveClear(t *testing.T) {
	r, db := setupTest(t)
	p := seedProduct(t, db)

	do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: p.ID, Quantity: 1})

	w := do(t, r, http.MethodPut, fmt.Sprintf("/cart/%d", p.ID), "s1", UpdateQuantityRequest{Quantity: 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, cartFrom(t, w).Items[0].Quantity)

	// Zero quantity is rejected.
	w = do(t, r, http.MethodPut, fmt.Sprintf("/cart/%d", p.ID), "s1", gin.H{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/cart/%d", p.ID), "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartFrom(t, w).Items)

	// Removing again is idempotent.
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/cart/%d", p.ID), "s1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	do(t, r, http.MethodPost, "/cart", "s1", AddItemRequest{ProductID: p.ID, Quantity: 1})
	w = do(t, r, http.MethodDelete, "/cart", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/cart", "s1", nil)
	assert.Empty(t, cartFrom(t, w).Items)
}
