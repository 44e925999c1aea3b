package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/routes"
)

var testCfg = config.Config{
	JWTSecret: "test-secret",
	TokenTTL:  time.Hour,
}

// setup builds a router over a fresh in-memory store. Redis is nil, so rate
// limiting and the auth cache are disabled, exactly as in a minimal deploy.
func setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Keep the whole test on one connection so the in-memory DB survives.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	r := gin.New()
	routes.RegisterRoutes(r, db, nil, testCfg)
	return db, r
}

// do sends a JSON request to the router and returns the recorder.
func do(t *testing.T, r *gin.Engine, method, path string, body any, headers ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorder body into dst.
func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
