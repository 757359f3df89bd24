package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /api/products/:id (admin)
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid product id"))
			return
		}
		result := db.Delete(&models.Product{}, uint(id))
		if result.Error != nil {
			httpapi.Fail(c, httpapi.Persistence(result.Error))
			return
		}
		if result.RowsAffected == 0 {
			httpapi.Fail(c, httpapi.NotFound("product not found"))
			return
		}
		httpapi.OK(c, http.StatusOK, gin.H{"message": "product deleted"})
	}
}
