package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"velora_back_end/internal/models"
)

// GetProducts handles GET /api/products with optional filters. Every supplied
// filter is ANDed; absent filters are left out of the query entirely.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		// Exact-match filters
		if v := c.Query("category"); v != "" {
			query = query.Where("category = ?", v)
		}
		if v := c.Query("fabric_type"); v != "" {
			query = query.Where("fabric_type = ?", v)
		}
		if v := c.Query("type"); v != "" {
			query = query.Where("type = ?", v)
		}

		// Tag-set membership against the comma-joined columns
		if v := c.Query("colors"); v != "" {
			query = tagMatch(query, "colors", v)
		}
		if v := c.Query("sizes"); v != "" {
			query = tagMatch(query, "sizes", v)
		}

		// Inclusive price range
		if v := c.Query("min_price"); v != "" {
			min, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", min)
		}
		if v := c.Query("max_price"); v != "" {
			max, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", max)
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			log.Printf("❌ GetProducts failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// tagMatch matches one tag inside a comma-joined column ("red" against
// "red,blue"). The four positions cover the whole-value, head, tail and middle
// cases with plain LIKE, so the predicate runs on MySQL and sqlite alike.
func tagMatch(query *gorm.DB, column, tag string) *gorm.DB {
	return query.Where(
		column+" = ? OR "+column+" LIKE ? OR "+column+" LIKE ? OR "+column+" LIKE ?",
		tag, tag+",%", "%,"+tag, "%,"+tag+",%",
	)
}

// CreateProduct handles POST /api/products, behind AuthRequired.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name       string  `json:"name" binding:"required"`
			Img        string  `json:"img"`
			Category   string  `json:"category" binding:"required"`
			FabricType string  `json:"fabric_type"`
			Type       string  `json:"type"`
			Colors     string  `json:"colors"`
			Sizes      string  `json:"sizes"`
			Price      float64 `json:"price" binding:"required,gte=0"`
			Stock      int     `json:"stock" binding:"gte=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:       input.Name,
			Img:        input.Img,
			Category:   input.Category,
			FabricType: input.FabricType,
			Type:       input.Type,
			Colors:     input.Colors,
			Sizes:      input.Sizes,
			Price:      input.Price,
			Stock:      input.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Printf("❌ CreateProduct failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		log.Printf("✅ Product created: %s (id=%d)", product.Name, product.ID)
		c.JSON(http.StatusCreated, product)
	}
}
