package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
)

type stubSessionService struct {
	session    *domain.Session
	sessions   []*domain.Session
	total      int
	err        error
	listParams domain.SessionListParams
	deletedID  string
}

func (s *stubSessionService) CreateSession(ctx context.Context, clientID string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) ListSessions(ctx context.Context, params domain.SessionListParams) ([]*domain.Session, int, error) {
	s.listParams = params
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.sessions, s.total, nil
}

func (s *stubSessionService) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) DeleteSession(ctx context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func setupSessionHandlerTest(service *stubSessionService) (*http.ServeMux, paseto.V4AsymmetricSecretKey) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	handler := NewSessionHandler(service, newStubUserService(), secretKey.Public(), &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, secretKey
}

func TestSessionHandler_List(t *testing.T) {
	t.Run("forwards pagination and filters", func(t *testing.T) {
		service := &stubSessionService{
			sessions: []*domain.Session{{ID: "s1", Status: domain.SessionStatusPending}},
			total:    1,
		}
		mux, secretKey := setupSessionHandlerTest(service)

		req := httptest.NewRequest("GET", "/api/sessions?client_id=c1&status=pending&limit=10&offset=20", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "c1", service.listParams.ClientID)
		assert.Equal(t, domain.SessionStatusPending, service.listParams.Status)
		assert.Equal(t, 10, service.listParams.Limit)
		assert.Equal(t, 20, service.listParams.Offset)

		var body struct {
			Sessions []*domain.Session `json:"sessions"`
			Total    int               `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Total)
		assert.Len(t, body.Sessions, 1)
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		mux, secretKey := setupSessionHandlerTest(&stubSessionService{})

		req := httptest.NewRequest("GET", "/api/sessions?limit=lots", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		mux, _ := setupSessionHandlerTest(&stubSessionService{})

		req := httptest.NewRequest("GET", "/api/sessions", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSessionHandler_Create(t *testing.T) {
	t.Run("creates a session for a client", func(t *testing.T) {
		service := &stubSessionService{session: &domain.Session{ID: "s1", ClientID: "c1", Status: domain.SessionStatusPending}}
		mux, secretKey := setupSessionHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"client_id": "c1"})
		req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "s1")
	})

	t.Run("unknown client is a 404", func(t *testing.T) {
		service := &stubSessionService{err: &domain.ErrNotFound{Entity: "client", ID: "c9"}}
		mux, secretKey := setupSessionHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"client_id": "c9"})
		req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionHandler_Update(t *testing.T) {
	t.Run("completed sessions are immutable", func(t *testing.T) {
		service := &stubSessionService{err: domain.ErrSessionCompleted}
		mux, secretKey := setupSessionHandlerTest(service)

		payload, _ := json.Marshal(map[string]string{"status": "pending"})
		req := httptest.NewRequest("PATCH", "/api/sessions/s1", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSessionHandler_Delete(t *testing.T) {
	t.Run("deletes by path id", func(t *testing.T) {
		service := &stubSessionService{}
		mux, secretKey := setupSessionHandlerTest(service)

		req := httptest.NewRequest("DELETE", "/api/sessions/s7", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "s7", service.deletedID)
	})
}
