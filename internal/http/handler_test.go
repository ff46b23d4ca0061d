package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/logger"
)

// testLogger records messages for assertions
type testLogger struct {
	Messages []string
}

func (l *testLogger) Debug(msg string) { l.Messages = append(l.Messages, "DEBUG: "+msg) }
func (l *testLogger) Info(msg string)  { l.Messages = append(l.Messages, "INFO: "+msg) }
func (l *testLogger) Warn(msg string)  { l.Messages = append(l.Messages, "WARN: "+msg) }
func (l *testLogger) Error(msg string) { l.Messages = append(l.Messages, "ERROR: "+msg) }
func (l *testLogger) Fatal(msg string) { l.Messages = append(l.Messages, "FATAL: "+msg) }

func (l *testLogger) WithField(key string, value interface{}) logger.Logger { return l }

func (l *testLogger) WithFields(fields map[string]interface{}) logger.Logger { return l }

// stubUserService authenticates every session against a fixed operator and
// reports a configurable profile status.
type stubUserService struct {
	user          *domain.User
	profileStatus domain.ProfileStatus
	verifyErr     error
}

func newStubUserService() *stubUserService {
	return &stubUserService{
		user:          &domain.User{ID: "op-1", Email: "studio@archetype.example"},
		profileStatus: domain.ProfileStatusApproved,
	}
}

func (s *stubUserService) SignIn(ctx context.Context, input domain.SignInInput) (string, error) {
	return "", nil
}

func (s *stubUserService) VerifyCode(ctx context.Context, input domain.VerifyCodeInput) (*domain.AuthResponse, error) {
	return nil, domain.ErrCodeExpired
}

func (s *stubUserService) VerifyUserSession(ctx context.Context, userID, sessionID string) (*domain.User, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.user, nil
}

func (s *stubUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return &domain.UserProfile{UserID: userID, Email: s.user.Email, Status: s.profileStatus}, nil
}

func (s *stubUserService) ListProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	return []*domain.UserProfile{{UserID: s.user.ID, Email: s.user.Email, Status: s.profileStatus}}, nil
}

func (s *stubUserService) UpdateProfileStatus(ctx context.Context, adminEmail string, req *domain.UpdateProfileStatusRequest) (*domain.UserProfile, error) {
	return &domain.UserProfile{UserID: req.UserID, Status: req.Status}, nil
}

// authenticate signs a token for the stub operator and sets it on the request
func authenticate(t *testing.T, req *http.Request, secretKey paseto.V4AsymmetricSecretKey) {
	t.Helper()
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(time.Hour))
	token.SetString("user_id", "op-1")
	token.SetString("session_id", "sess-1")
	req.Header.Set("Authorization", "Bearer "+token.V4Sign(secretKey, nil))
}
