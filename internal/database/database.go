package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// Connect opens the MySQL store and migrates the schema.
func Connect(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to MySQL")
	return db, nil
}

// Migrate creates or updates the users, products and cart_items tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
	)
}

// ConnectRedis returns a Redis client, or nil when Redis is not configured or
// not reachable. Callers treat a nil client as "rate limiting and auth caching
// disabled" rather than an error.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("⚠️  REDIS_HOST not set — rate limiting and auth cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unreachable (%v) — rate limiting and auth cache disabled", err)
		return nil
	}

	log.Println("✅ Connected to Redis")
	return rdb
}
