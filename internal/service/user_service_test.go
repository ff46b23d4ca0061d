package service

import (
	"context"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/domain/mocks"
	"github.com/archetype-studio/archetype/pkg/crypto"
)

func newUserService(t *testing.T, ctrl *gomock.Controller, isProduction bool) (*UserService, *mocks.MockUserRepository) {
	t.Helper()
	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewUserService(UserServiceConfig{
		Repository:   mockRepo,
		PrivateKey:   paseto.NewV4AsymmetricSecretKey(),
		SecretKey:    "test-secret",
		IsAdminEmail: func(email string) bool { return email == "admin@archetype.example" },
		IsProduction: isProduction,
		Logger:       newTestLogger(ctrl),
	})
	return service, mockRepo
}

func TestUserService_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newUserService(t, ctrl, false)
	ctx := context.Background()

	t.Run("first contact creates user and pending profile", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "nora@studio.example").Return(nil, domain.ErrUserNotFound)
		mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, u *domain.User) error {
				assert.Equal(t, "nora@studio.example", u.Email)
				assert.NotEmpty(t, u.ID)
				return nil
			})
		mockRepo.EXPECT().CreateProfile(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, p *domain.UserProfile) error {
				assert.Equal(t, domain.ProfileStatusPending, p.Status)
				return nil
			})
		mockRepo.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, s *domain.UserSession) error {
				require.NotNil(t, s.MagicCode)
				// Stored value is the HMAC digest, not the code itself
				assert.Len(t, *s.MagicCode, 64)
				require.NotNil(t, s.MagicCodeExpires)
				return nil
			})

		code, err := service.SignIn(ctx, domain.SignInInput{Email: "nora@studio.example"})
		require.NoError(t, err)
		// Development mode returns the code directly
		assert.Len(t, code, 6)
	})

	t.Run("existing user only gets a new session", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "nora@studio.example").
			Return(&domain.User{ID: "u1", Email: "nora@studio.example"}, nil)
		mockRepo.EXPECT().CreateSession(ctx, gomock.Any()).Return(nil)

		_, err := service.SignIn(ctx, domain.SignInInput{Email: "nora@studio.example"})
		require.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := service.SignIn(ctx, domain.SignInInput{Email: "nope"})
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestUserService_VerifyCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newUserService(t, ctrl, false)
	ctx := context.Background()

	user := &domain.User{ID: "u1", Email: "nora@studio.example"}
	codeHash := crypto.ComputeHMAC256([]byte("123456"), "test-secret")
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-time.Minute)

	t.Run("valid code yields a token and consumes the code", func(t *testing.T) {
		session := &domain.UserSession{
			ID: "sess1", UserID: "u1",
			ExpiresAt: time.Now().Add(time.Hour),
			MagicCode: &codeHash, MagicCodeExpires: &future,
		}
		mockRepo.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
		mockRepo.EXPECT().GetSessionsByUserID(ctx, "u1").Return([]*domain.UserSession{session}, nil)
		mockRepo.EXPECT().UpdateSession(ctx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, s *domain.UserSession) error {
				assert.Nil(t, s.MagicCode)
				assert.Nil(t, s.MagicCodeExpires)
				return nil
			})
		mockRepo.EXPECT().GetProfile(ctx, "u1").
			Return(&domain.UserProfile{UserID: "u1", Status: domain.ProfileStatusApproved}, nil)

		resp, err := service.VerifyCode(ctx, domain.VerifyCodeInput{Email: user.Email, Code: "123456"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "u1", resp.User.ID)
		assert.Equal(t, domain.ProfileStatusApproved, resp.Profile.Status)
	})

	t.Run("wrong code", func(t *testing.T) {
		session := &domain.UserSession{ID: "sess1", UserID: "u1", MagicCode: &codeHash, MagicCodeExpires: &future}
		mockRepo.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
		mockRepo.EXPECT().GetSessionsByUserID(ctx, "u1").Return([]*domain.UserSession{session}, nil)

		_, err := service.VerifyCode(ctx, domain.VerifyCodeInput{Email: user.Email, Code: "654321"})
		assert.ErrorIs(t, err, domain.ErrCodeExpired)
	})

	t.Run("expired code", func(t *testing.T) {
		session := &domain.UserSession{ID: "sess1", UserID: "u1", MagicCode: &codeHash, MagicCodeExpires: &past}
		mockRepo.EXPECT().GetUserByEmail(ctx, user.Email).Return(user, nil)
		mockRepo.EXPECT().GetSessionsByUserID(ctx, "u1").Return([]*domain.UserSession{session}, nil)

		_, err := service.VerifyCode(ctx, domain.VerifyCodeInput{Email: user.Email, Code: "123456"})
		assert.ErrorIs(t, err, domain.ErrCodeExpired)
	})

	t.Run("unknown email is indistinguishable from a bad code", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := service.VerifyCode(ctx, domain.VerifyCodeInput{Email: "ghost@example.com", Code: "123456"})
		assert.ErrorIs(t, err, domain.ErrCodeExpired)
	})
}

func TestUserService_VerifyUserSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newUserService(t, ctrl, false)
	ctx := context.Background()

	t.Run("live session", func(t *testing.T) {
		mockRepo.EXPECT().GetSessionByID(ctx, "sess1").
			Return(&domain.UserSession{ID: "sess1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		mockRepo.EXPECT().GetUserByID(ctx, "u1").Return(&domain.User{ID: "u1"}, nil)

		user, err := service.VerifyUserSession(ctx, "u1", "sess1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		mockRepo.EXPECT().GetSessionByID(ctx, "sess1").
			Return(&domain.UserSession{ID: "sess1", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)}, nil)
		mockRepo.EXPECT().DeleteSession(ctx, "sess1").Return(nil)

		_, err := service.VerifyUserSession(ctx, "u1", "sess1")
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("session owned by another user", func(t *testing.T) {
		mockRepo.EXPECT().GetSessionByID(ctx, "sess1").
			Return(&domain.UserSession{ID: "sess1", UserID: "other", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		_, err := service.VerifyUserSession(ctx, "u1", "sess1")
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("missing session", func(t *testing.T) {
		mockRepo.EXPECT().GetSessionByID(ctx, "gone").
			Return(nil, &domain.ErrNotFound{Entity: "user_session", ID: "gone"})

		_, err := service.VerifyUserSession(ctx, "u1", "gone")
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})
}

func TestUserService_UpdateProfileStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRepo := newUserService(t, ctrl, false)
	ctx := context.Background()

	t.Run("admin approves a profile", func(t *testing.T) {
		mockRepo.EXPECT().UpdateProfileStatus(ctx, "u1", domain.ProfileStatusApproved, "admin@archetype.example").
			Return(&domain.UserProfile{UserID: "u1", Status: domain.ProfileStatusApproved}, nil)

		profile, err := service.UpdateProfileStatus(ctx, "admin@archetype.example",
			&domain.UpdateProfileStatusRequest{UserID: "u1", Status: domain.ProfileStatusApproved})
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileStatusApproved, profile.Status)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		_, err := service.UpdateProfileStatus(ctx, "nora@studio.example",
			&domain.UpdateProfileStatusRequest{UserID: "u1", Status: domain.ProfileStatusApproved})
		assert.ErrorIs(t, err, domain.ErrUserNotApproved)
	})

	t.Run("pending is not a valid target status", func(t *testing.T) {
		_, err := service.UpdateProfileStatus(ctx, "admin@archetype.example",
			&domain.UpdateProfileStatusRequest{UserID: "u1", Status: domain.ProfileStatusPending})
		assert.True(t, domain.IsValidationError(err))
	})
}
