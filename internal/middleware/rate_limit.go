package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// Per-endpoint limits
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3
	APIMaxRequests      = 100 // per minute, general endpoints

	// Cooldown durations
	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
	APICooldown      = 1 * time.Minute
)

// LoginRateLimit throttles login attempts per email. A nil Redis client
// disables the limit entirely.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		// Peek at the body without consuming it.
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if rdb.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := rdb.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := rdb.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			rdb.Set(ctx, cooldownKey, "1", LoginCooldown)
			rdb.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Locked for %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Count failures, reset on success.
		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			rdb.Incr(ctx, key)
			rdb.Expire(ctx, key, LoginCooldown)
		case http.StatusOK:
			rdb.Del(ctx, key)
			rdb.Del(ctx, cooldownKey)
		}
	}
}

// RegisterRateLimit throttles registrations per client IP.
func RegisterRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		ip := c.ClientIP()
		key := "register_attempts:" + ip
		cooldownKey := "register_cooldown:" + ip

		if rdb.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := rdb.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many registrations. Try again in %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := rdb.Get(ctx, key).Int()
		if attempts >= RegisterMaxAttempts {
			rdb.Set(ctx, cooldownKey, "1", RegisterCooldown)
			rdb.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many registrations. Try again in %d minutes", int(RegisterCooldown.Minutes())),
				"retry_after": int(RegisterCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusCreated {
			rdb.Incr(ctx, key)
			rdb.Expire(ctx, key, RegisterCooldown)
		}
	}
}

// APIRateLimit caps requests per IP per minute across the whole API.
func APIRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		requests, _ := rdb.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Try again in 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := rdb.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests-1))

		c.Next()
	}
}
