package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
)

func setupAdminHandlerTest(userService domain.UserServiceInterface, adminEmail string) (*http.ServeMux, paseto.V4AsymmetricSecretKey) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	isAdmin := func(email string) bool { return email == adminEmail }
	handler := NewAdminHandler(userService, secretKey.Public(), isAdmin, &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, secretKey
}

func TestAdminHandler_List(t *testing.T) {
	t.Run("admin lists operator profiles", func(t *testing.T) {
		userService := newStubUserService()
		mux, secretKey := setupAdminHandlerTest(userService, userService.user.Email)

		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string][]*domain.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body["users"], 1)
	})

	t.Run("non-admin is a 403", func(t *testing.T) {
		userService := newStubUserService()
		mux, secretKey := setupAdminHandlerTest(userService, "someone-else@archetype.example")

		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		userService := newStubUserService()
		mux, _ := setupAdminHandlerTest(userService, userService.user.Email)

		req := httptest.NewRequest("GET", "/api/admin/users", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	t.Run("admin approves an operator", func(t *testing.T) {
		userService := newStubUserService()
		mux, secretKey := setupAdminHandlerTest(userService, userService.user.Email)

		payload, _ := json.Marshal(map[string]string{"user_id": "u2", "status": "approved"})
		req := httptest.NewRequest("PATCH", "/api/admin/users", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u2")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		userService := newStubUserService()
		mux, secretKey := setupAdminHandlerTest(userService, userService.user.Email)

		req := httptest.NewRequest("PATCH", "/api/admin/users", bytes.NewReader([]byte("{")))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
