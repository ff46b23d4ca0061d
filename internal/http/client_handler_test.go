package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
)

type stubClientService struct {
	clients   []*domain.Client
	client    *domain.Client
	err       error
	deletedID string
}

func (s *stubClientService) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

func (s *stubClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

func (s *stubClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.clients, nil
}

func (s *stubClientService) UpdateClient(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

func (s *stubClientService) DeleteClient(ctx context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func setupClientHandlerTest(service *stubClientService) (*http.ServeMux, paseto.V4AsymmetricSecretKey, *stubUserService) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	userService := newStubUserService()
	handler := NewClientHandler(service, userService, secretKey.Public(), &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, secretKey, userService
}

func TestClientHandler_List(t *testing.T) {
	t.Run("returns clients", func(t *testing.T) {
		service := &stubClientService{clients: []*domain.Client{{ID: "c1", Email: "client@example.com"}}}
		mux, secretKey, _ := setupClientHandlerTest(service)

		req := httptest.NewRequest("GET", "/api/clients", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string][]*domain.Client
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body["clients"], 1)
		assert.Equal(t, "c1", body["clients"][0].ID)
	})

	t.Run("requires authentication", func(t *testing.T) {
		mux, _, _ := setupClientHandlerTest(&stubClientService{})

		req := httptest.NewRequest("GET", "/api/clients", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects operators pending approval", func(t *testing.T) {
		mux, secretKey, userService := setupClientHandlerTest(&stubClientService{})
		userService.profileStatus = domain.ProfileStatusPending

		req := httptest.NewRequest("GET", "/api/clients", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		mux, secretKey, _ := setupClientHandlerTest(&stubClientService{err: errors.New("db down")})

		req := httptest.NewRequest("GET", "/api/clients", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to list clients")
	})
}

func TestClientHandler_Create(t *testing.T) {
	t.Run("creates a client", func(t *testing.T) {
		service := &stubClientService{client: &domain.Client{ID: "c1", Email: "client@example.com"}}
		mux, secretKey, _ := setupClientHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"email": "client@example.com"})
		req := httptest.NewRequest("POST", "/api/clients", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "c1")
	})

	t.Run("validation failure is a 400", func(t *testing.T) {
		service := &stubClientService{err: domain.NewValidationError("email is invalid")}
		mux, secretKey, _ := setupClientHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"email": "nope"})
		req := httptest.NewRequest("POST", "/api/clients", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email is invalid")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		mux, secretKey, _ := setupClientHandlerTest(&stubClientService{})

		req := httptest.NewRequest("POST", "/api/clients", bytes.NewReader([]byte("{")))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is a 409", func(t *testing.T) {
		service := &stubClientService{err: domain.ErrClientEmailExists}
		mux, secretKey, _ := setupClientHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"email": "client@example.com"})
		req := httptest.NewRequest("POST", "/api/clients", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})
}

func TestClientHandler_Get(t *testing.T) {
	t.Run("unknown client is a 404", func(t *testing.T) {
		service := &stubClientService{err: &domain.ErrNotFound{Entity: "client", ID: "missing"}}
		mux, secretKey, _ := setupClientHandlerTest(service)

		req := httptest.NewRequest("GET", "/api/clients/missing", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClientHandler_Delete(t *testing.T) {
	t.Run("deletes by path id", func(t *testing.T) {
		service := &stubClientService{}
		mux, secretKey, _ := setupClientHandlerTest(service)

		req := httptest.NewRequest("DELETE", "/api/clients/c9", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "c9", service.deletedID)
	})
}
