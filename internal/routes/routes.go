package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"velora_back_end/internal/config"
	"velora_back_end/internal/handlers"
	"velora_back_end/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg config.Config) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit(rdb))

	// Auth
	api.POST("/register", middleware.RegisterRateLimit(rdb), handlers.Register(db, cfg))
	api.POST("/login", middleware.LoginRateLimit(rdb), handlers.Login(db, rdb, cfg))
	api.GET("/me", middleware.AuthRequired(cfg.JWTSecret), handlers.Me(db))

	// Catalog
	api.GET("/products", handlers.GetProducts(db))
	api.POST("/products", middleware.AuthRequired(cfg.JWTSecret), handlers.CreateProduct(db))

	// Cart
	api.POST("/cart", handlers.AddToCart(db))
	api.GET("/cart", handlers.GetCart(db))
	api.DELETE("/cart", handlers.RemoveFromCart(db))
}
