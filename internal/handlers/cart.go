package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"velora_back_end/internal/models"
)

var (
	errInsufficientStock = errors.New("insufficient stock")
	errProductNotFound   = errors.New("product does not exist")
	errItemNotInCart     = errors.New("item not in cart")
)

// AddToCart handles POST /api/cart.
//
// The stock check and decrement run as a single conditional UPDATE, so two
// concurrent adds can never oversell a product.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID    uint `json:"user_id" binding:"required"`
			ProductID uint `json:"product_id" binding:"required"`
			Quantity  int  `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", input.ProductID, input.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", input.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Nothing matched: either the product is missing or the stock
				// is too low.
				var product models.Product
				if err := tx.First(&product, input.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errProductNotFound
					}
					return err
				}
				return errInsufficientStock
			}

			// Merge with an existing line item for this (user, product) pair.
			var item models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", input.UserID, input.ProductID).
				First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item = models.CartItem{
					UserID:    input.UserID,
					ProductID: input.ProductID,
					Quantity:  input.Quantity,
					AddedAt:   time.Now(),
				}
				return tx.Create(&item).Error
			}
			if err != nil {
				return err
			}
			return tx.Model(&item).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error
		})

		switch {
		case errors.Is(err, errProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		case errors.Is(err, errInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
		case err != nil:
			log.Printf("❌ AddToCart failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		default:
			c.JSON(http.StatusCreated, gin.H{
				"message": "Product added to cart",
				"status":  201,
			})
		}
	}
}

// GetCart handles GET /api/cart?user_id=N.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		items := []models.CartItem{}
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			log.Printf("❌ GetCart failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		// An empty cart is a 200 with an empty array, not an error.
		c.JSON(http.StatusOK, items)
	}
}

// RemoveFromCart handles DELETE /api/cart.
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID    uint `json:"user_id" binding:"required"`
			ProductID uint `json:"product_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", input.UserID, input.ProductID).
				First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errItemNotInCart
			}
			if err != nil {
				return err
			}

			if err := tx.Delete(&item).Error; err != nil {
				return err
			}

			// Give the reserved quantity back to the product.
			return tx.Model(&models.Product{}).
				Where("id = ?", input.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
		})

		switch {
		case errors.Is(err, errItemNotInCart):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		case err != nil:
			log.Printf("❌ RemoveFromCart failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
		}
	}
}
