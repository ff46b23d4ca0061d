package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/service"
)

type stubShowroomService struct {
	showroom  *service.Showroom
	selection *domain.ShowroomSelection
	err       error
	submitted *service.SubmitSelectionRequest
}

func (s *stubShowroomService) Get(ctx context.Context, sessionID string) (*service.Showroom, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.showroom, nil
}

func (s *stubShowroomService) SubmitSelection(ctx context.Context, req *service.SubmitSelectionRequest) (*domain.ShowroomSelection, error) {
	s.submitted = req
	if s.err != nil {
		return nil, s.err
	}
	return s.selection, nil
}

type stubChatService struct {
	reply string
	err   error
}

func (s *stubChatService) Reply(ctx context.Context, req *domain.ChatRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func setupShowroomHandlerTest(showrooms *stubShowroomService, chat *stubChatService) *http.ServeMux {
	handler := NewShowroomHandler(showrooms, chat, &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func TestShowroomHandler_Get(t *testing.T) {
	t.Run("returns the showroom bootstrap", func(t *testing.T) {
		showrooms := &stubShowroomService{showroom: &service.Showroom{
			SessionID:      "s1",
			ShowroomStatus: domain.ShowroomStatusSent,
			Proposals:      []*domain.DesignProposal{{ID: "p1", SlotNumber: 1, Title: "Essentiel", Price: 1800}},
		}}
		mux := setupShowroomHandlerTest(showrooms, &stubChatService{})

		req := httptest.NewRequest("GET", "/api/showroom/s1", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body service.Showroom
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "s1", body.SessionID)
		assert.Len(t, body.Proposals, 1)
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		showrooms := &stubShowroomService{err: &domain.ErrNotFound{Entity: "session", ID: "s9"}}
		mux := setupShowroomHandlerTest(showrooms, &stubChatService{})

		req := httptest.NewRequest("GET", "/api/showroom/s9", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestShowroomHandler_Select(t *testing.T) {
	selectionBody := func(t *testing.T) *bytes.Reader {
		t.Helper()
		payload, err := json.Marshal(service.SubmitSelectionRequest{
			ProposalID:  "p1",
			ActionType:  domain.ActionSigned,
			ClientEmail: "client@example.com",
		})
		require.NoError(t, err)
		return bytes.NewReader(payload)
	}

	t.Run("records the selection", func(t *testing.T) {
		showrooms := &stubShowroomService{selection: &domain.ShowroomSelection{
			ID:         "sel1",
			SessionID:  "s1",
			ActionType: domain.ActionSigned,
			FinalPrice: 2040,
		}}
		mux := setupShowroomHandlerTest(showrooms, &stubChatService{})

		req := httptest.NewRequest("POST", "/api/showroom/s1/select", selectionBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, showrooms.submitted)
		assert.Equal(t, "s1", showrooms.submitted.SessionID)
		assert.Contains(t, w.Body.String(), "sel1")
	})

	t.Run("showroom not sent is a 412", func(t *testing.T) {
		showrooms := &stubShowroomService{err: domain.ErrShowroomNotSent}
		mux := setupShowroomHandlerTest(showrooms, &stubChatService{})

		req := httptest.NewRequest("POST", "/api/showroom/s1/select", selectionBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	})

	t.Run("existing selection is a 409", func(t *testing.T) {
		showrooms := &stubShowroomService{err: domain.ErrSelectionExists}
		mux := setupShowroomHandlerTest(showrooms, &stubChatService{})

		req := httptest.NewRequest("POST", "/api/showroom/s1/select", selectionBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		mux := setupShowroomHandlerTest(&stubShowroomService{}, &stubChatService{})

		req := httptest.NewRequest("POST", "/api/showroom/s1/select", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestShowroomHandler_Chat(t *testing.T) {
	chatBody := func(t *testing.T) *bytes.Reader {
		t.Helper()
		payload, err := json.Marshal(domain.ChatRequest{
			SessionID: "s1",
			Messages:  []domain.ChatMessage{{Role: "user", Content: "Quelle proposition est la plus adaptée ?"}},
		})
		require.NoError(t, err)
		return bytes.NewReader(payload)
	}

	t.Run("returns the reply", func(t *testing.T) {
		chat := &stubChatService{reply: "La première proposition correspond le mieux."}
		mux := setupShowroomHandlerTest(&stubShowroomService{}, chat)

		req := httptest.NewRequest("POST", "/api/showroom/chat", chatBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "La première proposition")
	})

	t.Run("generator failure is a 500", func(t *testing.T) {
		chat := &stubChatService{err: errors.New("model unavailable")}
		mux := setupShowroomHandlerTest(&stubShowroomService{}, chat)

		req := httptest.NewRequest("POST", "/api/showroom/chat", chatBody(t))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to generate reply")
	})
}
