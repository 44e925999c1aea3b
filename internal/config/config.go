package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every value the server reads from the environment. It is
// built once in Load and passed into the constructors that need it; nothing
// else in the codebase reads os.Getenv.
type Config struct {
	Port        string
	FrontendURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found — falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:5173"),
		DBHost:        getenv("MYSQL_HOST", "127.0.0.1"),
		DBPort:        getenv("MYSQL_PORT", "3306"),
		DBUser:        os.Getenv("MYSQL_USER"),
		DBPassword:    os.Getenv("MYSQL_PASSWORD"),
		DBName:        os.Getenv("MYSQL_DB"),
		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      time.Hour,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      587,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      getenv("MAIL_FROM", "no-reply@velora.shop"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// DSN builds the MySQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
