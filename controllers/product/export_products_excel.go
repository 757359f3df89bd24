package productcontroller

import (
	"strconv"
	"strings"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /api/products/export-excel (admin)
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Order("id").Find(&products).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		headers := []string{
			"ID", "Name", "Slug", "Price", "Discount", "Category",
			"Material", "Color", "Weight", "InStock", "Featured",
			"Images", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(p.ID))
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Discount)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Material)
			row.AddCell().SetValue(p.Color)
			row.AddCell().SetValue(p.Weight)
			row.AddCell().SetValue(strconv.FormatBool(p.InStock))
			row.AddCell().SetValue(strconv.FormatBool(p.Featured))
			row.AddCell().SetValue(strings.Join(p.Images, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
	}
}
