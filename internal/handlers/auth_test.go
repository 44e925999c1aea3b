package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

func registerBody(username, email, password string) map[string]string {
	return map[string]string{"username": username, "email": email, "password": password}
}

func TestRegister(t *testing.T) {
	db, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("alice", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	decode(t, w, &resp)
	assert.Equal(t, "User registered successfully!", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotZero(t, resp.User.ID)

	// Password is stored hashed, never plaintext.
	var user models.User
	require.NoError(t, db.First(&user, resp.User.ID).Error)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NotEmpty(t, user.Password)

	// The token claims the registered identity and expires in one hour.
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testCfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(resp.User.ID), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("alice", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/register", registerBody("impostor", "alice@example.com", "other"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists!")

	// The first user's row is untouched.
	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestRegisterSanitizesFields(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register",
		registerBody("al<i>ce;", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	decode(t, w, &resp)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestRegisterRejectsEmptyAfterSanitization(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("<>!;", "alice@example.com", "s3cret"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("alice", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)
	var reg authResponse
	decode(t, w, &reg)

	w = do(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "alice@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	decode(t, w, &resp)
	assert.Equal(t, "Login successful!", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("alice", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials!")
}

func TestLoginUnknownEmail(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/login",
		map[string]string{"email": "ghost@example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/api/register", registerBody("alice", "alice@example.com", "s3cret"))
	require.Equal(t, http.StatusCreated, w.Code)
	var reg authResponse
	decode(t, w, &reg)

	// With the issued token
	w = do(t, r, http.MethodGet, "/api/me", nil, bearer(reg.Token))
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decode(t, w, &me)
	assert.Equal(t, reg.User.ID, me.ID)
	assert.Equal(t, "alice@example.com", me.Email)

	// Without a token
	w = do(t, r, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With garbage
	w = do(t, r, http.MethodGet, "/api/me", nil, bearer("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
