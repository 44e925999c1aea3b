package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/validate"
)

// ================== LOCAL AUTH ==================

// Register handles POST /api/register.
func Register(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required"`
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		username, err := validate.Username(input.Username)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email, err := validate.Email(input.Email)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Email already taken?
		var existing models.User
		err = db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists!"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Register: user lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{Username: username, Email: email, Password: string(hashed)}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Register: insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		token, err := generateToken(cfg, user)
		if err != nil {
			log.Printf("❌ Register: token signing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		// Best effort, never blocks the response.
		go services.SendWelcomeMail(cfg, user)

		log.Printf("✅ User registered: %s (id=%d)", user.Email, user.ID)
		c.JSON(http.StatusCreated, gin.H{
			"status":  201,
			"message": "User registered successfully!",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Login handles POST /api/login.
func Login(db *gorm.DB, rdb *redis.Client, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email, err := validate.Email(input.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
				return
			}
			log.Printf("❌ Login: user lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		// Cached verifications skip bcrypt on repeat logins.
		if !cache.CheckPassword(rdb, email, input.Password) {
			if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
				return
			}
			cache.StorePassword(rdb, email, input.Password)
		}

		token, err := generateToken(cfg, user)
		if err != nil {
			log.Printf("❌ Login: token signing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Login successful!",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Me handles GET /api/me, behind AuthRequired.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Printf("❌ Me: user lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}

		c.JSON(http.StatusOK, user.Public())
	}
}

// generateToken signs a one-hour HS256 bearer token for the user.
func generateToken(cfg config.Config, user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
