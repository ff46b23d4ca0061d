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
	"github.com/archetype-studio/archetype/internal/service"
)

type stubEmailService struct {
	session   *domain.Session
	markErr   error
	notifyErr error
	sentID    string
	notified  *service.InterestPayload
}

func (s *stubEmailService) MarkSent(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.sentID = sessionID
	if s.markErr != nil {
		return nil, s.markErr
	}
	return s.session, nil
}

func (s *stubEmailService) NotifyInterest(ctx context.Context, payload *service.InterestPayload) error {
	s.notified = payload
	return s.notifyErr
}

func setupEmailHandlerTest(emailService *stubEmailService) (*http.ServeMux, paseto.V4AsymmetricSecretKey) {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	handler := NewEmailHandler(emailService, newStubUserService(), secretKey.Public(), &testLogger{})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, secretKey
}

func TestEmailHandler_SendShowroom(t *testing.T) {
	t.Run("marks the showroom sent", func(t *testing.T) {
		emailService := &stubEmailService{session: &domain.Session{ID: "s1", ShowroomStatus: domain.ShowroomStatusSent}}
		mux, secretKey := setupEmailHandlerTest(emailService)

		payload, _ := json.Marshal(map[string]string{"sessionId": "s1"})
		req := httptest.NewRequest("POST", "/api/email/send-showroom", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "s1", emailService.sentID)
		assert.Contains(t, w.Body.String(), "sent")
	})

	t.Run("missing sessionId is a 400", func(t *testing.T) {
		mux, secretKey := setupEmailHandlerTest(&stubEmailService{})

		req := httptest.NewRequest("POST", "/api/email/send-showroom", bytes.NewReader([]byte(`{}`)))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete session is a 400", func(t *testing.T) {
		emailService := &stubEmailService{markErr: domain.NewValidationError("session is not completed")}
		mux, secretKey := setupEmailHandlerTest(emailService)

		payload, _ := json.Marshal(map[string]string{"sessionId": "s1"})
		req := httptest.NewRequest("POST", "/api/email/send-showroom", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		mux, _ := setupEmailHandlerTest(&stubEmailService{})

		payload, _ := json.Marshal(map[string]string{"sessionId": "s1"})
		req := httptest.NewRequest("POST", "/api/email/send-showroom", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEmailHandler_NotifyInterest(t *testing.T) {
	t.Run("queues the notification", func(t *testing.T) {
		emailService := &stubEmailService{}
		mux, secretKey := setupEmailHandlerTest(emailService)

		payload, _ := json.Marshal(service.InterestPayload{
			ClientEmail: "client@example.com",
			CompanyName: "Atelier Lumen",
			ActionType:  "quote_request",
			DesignTitle: "Essentiel",
			FinalPrice:  1800,
		})
		req := httptest.NewRequest("POST", "/api/email/notify-interest", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, emailService.notified)
		assert.Equal(t, "client@example.com", emailService.notified.ClientEmail)
	})

	t.Run("invalid client email is a 400", func(t *testing.T) {
		emailService := &stubEmailService{notifyErr: domain.NewValidationError("clientEmail is invalid")}
		mux, secretKey := setupEmailHandlerTest(emailService)

		payload, _ := json.Marshal(service.InterestPayload{ClientEmail: "nope"})
		req := httptest.NewRequest("POST", "/api/email/notify-interest", bytes.NewReader(payload))
		authenticate(t, req, secretKey)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
