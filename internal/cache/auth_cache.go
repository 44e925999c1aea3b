package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Successful password verifications are cached for 15 minutes so repeated
// logins skip the bcrypt comparison.
const AuthCacheTTL = 15 * time.Minute

func authKey(email, password string) string {
	sum := sha256.Sum256([]byte(password))
	return "auth:" + email + ":" + hex.EncodeToString(sum[:])
}

// CheckPassword reports whether this email/password pair was recently verified.
func CheckPassword(rdb *redis.Client, email, password string) bool {
	if rdb == nil {
		return false
	}
	result, err := rdb.Get(context.Background(), authKey(email, password)).Result()
	return err == nil && result == "valid"
}

// StorePassword records a successful verification.
func StorePassword(rdb *redis.Client, email, password string) {
	if rdb == nil {
		return
	}
	rdb.Set(context.Background(), authKey(email, password), "valid", AuthCacheTTL)
}
