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

type stubAnalystService struct {
	brief  string
	prompt *domain.GeneratedPrompt
	err    error
}

func (s *stubAnalystService) GenerateBrief(ctx context.Context, req *domain.GenerateBriefRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.brief, nil
}

func (s *stubAnalystService) GetBrief(ctx context.Context, sessionID string) (*domain.GeneratedPrompt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prompt, nil
}

func setupAnalystHandlerTest(analyst *stubAnalystService) (*http.ServeMux, paseto.V4AsymmetricSecretKey) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	handler := NewAnalystHandler(analyst, newStubUserService(), secretKey.Public(), &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, secretKey
}

func TestAnalystHandler_Generate(t *testing.T) {
	briefBody := func(t *testing.T) *bytes.Reader {
		t.Helper()
		payload, err := json.Marshal(domain.GenerateBriefRequest{
			SessionID:     "s1",
			Questionnaire: map[string]string{"ambiance": "minimaliste"},
		})
		require.NoError(t, err)
		return bytes.NewReader(payload)
	}

	t.Run("returns the generated brief", func(t *testing.T) {
		analyst := &stubAnalystService{brief: "Brief créatif pour Atelier Lumen"}
		mux, secretKey := setupAnalystHandlerTest(analyst)

		req := httptest.NewRequest("POST", "/api/analyst/generate", briefBody(t))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Brief créatif")
	})

	t.Run("generation failure is a 500", func(t *testing.T) {
		analyst := &stubAnalystService{err: errors.New("model unavailable")}
		mux, secretKey := setupAnalystHandlerTest(analyst)

		req := httptest.NewRequest("POST", "/api/analyst/generate", briefBody(t))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		mux, _ := setupAnalystHandlerTest(&stubAnalystService{})

		req := httptest.NewRequest("POST", "/api/analyst/generate", briefBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAnalystHandler_GetBrief(t *testing.T) {
	t.Run("returns the stored brief", func(t *testing.T) {
		analyst := &stubAnalystService{prompt: &domain.GeneratedPrompt{
			SessionID:     "s1",
			PromptType:    domain.PromptTypeAnalystBrief,
			PromptContent: "Brief créatif",
		}}
		mux, secretKey := setupAnalystHandlerTest(analyst)

		req := httptest.NewRequest("GET", "/api/analyst/brief?session_id=s1", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Brief créatif")
	})

	t.Run("missing brief is a 404", func(t *testing.T) {
		analyst := &stubAnalystService{err: &domain.ErrNotFound{Entity: "generated prompt", ID: "s1"}}
		mux, secretKey := setupAnalystHandlerTest(analyst)

		req := httptest.NewRequest("GET", "/api/analyst/brief?session_id=s1", nil)
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
