package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroongit/Smart-news-hub/internal/domain"
	"github.com/zeroongit/Smart-news-hub/internal/service"
)

type stubAuthService struct {
	user  *domain.User
	token string
	err   error

	lastRegister service.RegisterInput
	lastLogin    service.LoginInput
}

func (s *stubAuthService) Register(_ context.Context, in service.RegisterInput) (*domain.User, error) {
	s.lastRegister = in
	return s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, in service.LoginInput) (*domain.User, string, error) {
	s.lastLogin = in
	return s.user, s.token, s.err
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		Email:        "writer@example.com",
		Name:         "Writer One",
		PasswordHash: "$2a$10$secret",
		Role:         domain.RoleUser,
	}
}

func authTestRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(stub)
	router.POST("/api/v1/auth/register", h.Register)
	router.POST("/api/v1/auth/login", h.Login)
	return router
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created without password hash in the body", func(t *testing.T) {
		stub := &stubAuthService{user: sampleUser()}
		router := authTestRouter(stub)

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
			"email": "writer@example.com", "name": "Writer One", "password": "correct-horse",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "writer@example.com", stub.lastRegister.Email)
		assert.NotContains(t, w.Body.String(), "secret")

		var body struct {
			User UserResponse `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body.User.ID)
		assert.Equal(t, domain.RoleUser, body.User.Role)
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		router := authTestRouter(&stubAuthService{user: sampleUser()})

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{"email": "writer@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		stub := &stubAuthService{err: fmt.Errorf("%w: email already registered", domain.ErrConflict)}
		router := authTestRouter(stub)

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
			"email": "writer@example.com", "name": "Writer One", "password": "correct-horse",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns token and user", func(t *testing.T) {
		stub := &stubAuthService{user: sampleUser(), token: "signed-token"}
		router := authTestRouter(stub)

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
			"email": "writer@example.com", "password": "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Token string       `json:"token"`
			User  UserResponse `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "signed-token", body.Token)
		assert.Equal(t, "user-1", body.User.ID)
	})

	t.Run("bad credentials is 401 with a fixed message", func(t *testing.T) {
		stub := &stubAuthService{err: fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)}
		router := authTestRouter(stub)

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
			"email": "writer@example.com", "password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("missing password is 400", func(t *testing.T) {
		router := authTestRouter(&stubAuthService{user: sampleUser()})

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "writer@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
