package service

import (
	"context"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/pkg/crypto"
	"github.com/archetype-studio/archetype/pkg/logger"
)

const (
	magicCodeLength = 6
	magicCodeExpiry = 10 * time.Minute
	sessionExpiry   = 15 * 24 * time.Hour
)

// EmailSender sends the sign-in code
type EmailSender interface {
	SendMagicCode(email, code string) error
}

// UserService implements operator sign-in with emailed magic codes. Codes
// are stored HMAC-hashed, never in clear.
type UserService struct {
	repo         domain.UserRepository
	emailSender  EmailSender
	privateKey   paseto.V4AsymmetricSecretKey
	secretKey    string
	isAdminEmail func(string) bool
	isProduction bool
	logger       logger.Logger
}

type UserServiceConfig struct {
	Repository   domain.UserRepository
	EmailSender  EmailSender
	PrivateKey   paseto.V4AsymmetricSecretKey
	SecretKey    string
	IsAdminEmail func(string) bool
	IsProduction bool
	Logger       logger.Logger
}

func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		repo:         cfg.Repository,
		emailSender:  cfg.EmailSender,
		privateKey:   cfg.PrivateKey,
		secretKey:    cfg.SecretKey,
		isAdminEmail: cfg.IsAdminEmail,
		isProduction: cfg.IsProduction,
		logger:       cfg.Logger,
	}
}

// Ensure UserService implements UserServiceInterface
var _ domain.UserServiceInterface = (*UserService)(nil)

// SignIn creates the operator account on first contact and emails a
// short-lived sign-in code. New accounts start with a pending profile and
// wait for admin approval. In development the code is returned directly.
func (s *UserService) SignIn(ctx context.Context, input domain.SignInInput) (string, error) {
	if input.Email == "" || !govalidator.IsEmail(input.Email) {
		return "", domain.NewValidationError("email is invalid")
	}

	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if err != domain.ErrUserNotFound {
			s.logger.WithField("email", input.Email).Error(fmt.Sprintf("Failed to get user by email: %v", err))
			return "", err
		}
		user = &domain.User{
			ID:    uuid.New().String(),
			Email: input.Email,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			s.logger.WithField("email", input.Email).Error(fmt.Sprintf("Failed to create user: %v", err))
			return "", err
		}
		profile := &domain.UserProfile{
			UserID: user.ID,
			Email:  user.Email,
			Status: domain.ProfileStatusPending,
		}
		if err := s.repo.CreateProfile(ctx, profile); err != nil {
			s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to create profile: %v", err))
			return "", err
		}
	}

	code, err := s.generateMagicCode()
	if err != nil {
		return "", err
	}
	codeHash := crypto.ComputeHMAC256([]byte(code), s.secretKey)
	codeExpires := time.Now().UTC().Add(magicCodeExpiry)

	session := &domain.UserSession{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		ExpiresAt:        time.Now().UTC().Add(sessionExpiry),
		CreatedAt:        time.Now().UTC(),
		MagicCode:        &codeHash,
		MagicCodeExpires: &codeExpires,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to create session: %v", err))
		return "", err
	}

	if !s.isProduction {
		return code, nil
	}

	if err := s.emailSender.SendMagicCode(user.Email, code); err != nil {
		s.logger.WithField("user_id", user.ID).WithField("email", user.Email).Error(fmt.Sprintf("Failed to send magic code: %v", err))
		return "", err
	}
	return "", nil
}

// VerifyCode exchanges a valid sign-in code for a paseto token
func (s *UserService) VerifyCode(ctx context.Context, input domain.VerifyCodeInput) (*domain.AuthResponse, error) {
	if input.Email == "" || input.Code == "" {
		return nil, domain.NewValidationError("email and code are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrCodeExpired
		}
		s.logger.WithField("email", input.Email).Error(fmt.Sprintf("Failed to get user by email: %v", err))
		return nil, err
	}

	sessions, err := s.repo.GetSessionsByUserID(ctx, user.ID)
	if err != nil {
		s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to list sessions: %v", err))
		return nil, err
	}

	var matching *domain.UserSession
	for _, session := range sessions {
		if session.MagicCode == nil {
			continue
		}
		if crypto.VerifyHMAC(s.secretKey, []byte(input.Code), *session.MagicCode) {
			matching = session
			break
		}
	}
	if matching == nil {
		s.logger.WithField("email", input.Email).Warn("Invalid sign-in code")
		return nil, domain.ErrCodeExpired
	}
	if matching.MagicCodeExpires == nil || time.Now().After(*matching.MagicCodeExpires) {
		s.logger.WithField("email", input.Email).Warn("Expired sign-in code")
		return nil, domain.ErrCodeExpired
	}

	// Consume the code and refresh the session window.
	matching.MagicCode = nil
	matching.MagicCodeExpires = nil
	matching.ExpiresAt = time.Now().UTC().Add(sessionExpiry)
	if err := s.repo.UpdateSession(ctx, matching); err != nil {
		s.logger.WithField("session_id", matching.ID).Error(fmt.Sprintf("Failed to update session: %v", err))
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		s.logger.WithField("user_id", user.ID).Error(fmt.Sprintf("Failed to get profile: %v", err))
		return nil, err
	}

	token := s.generateAuthToken(user, matching.ID, matching.ExpiresAt)

	return &domain.AuthResponse{
		Token:     token,
		User:      *user,
		Profile:   *profile,
		ExpiresAt: matching.ExpiresAt,
	}, nil
}

// VerifyUserSession checks that a token's session is still live
func (s *UserService) VerifyUserSession(ctx context.Context, userID string, sessionID string) (*domain.User, error) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrSessionExpired
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.repo.DeleteSession(ctx, sessionID); err != nil && !domain.IsNotFound(err) {
			s.logger.WithField("session_id", sessionID).Error(fmt.Sprintf("Failed to delete expired session: %v", err))
		}
		return nil, domain.ErrSessionExpired
	}
	return s.repo.GetUserByID(ctx, userID)
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *UserService) ListProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	return s.repo.ListProfiles(ctx)
}

// UpdateProfileStatus approves or rejects an operator signup. Only emails on
// the admin allow-list may call it.
func (s *UserService) UpdateProfileStatus(ctx context.Context, adminEmail string, req *domain.UpdateProfileStatusRequest) (*domain.UserProfile, error) {
	if s.isAdminEmail == nil || !s.isAdminEmail(adminEmail) {
		return nil, domain.ErrUserNotApproved
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.UpdateProfileStatus(ctx, req.UserID, req.Status, adminEmail)
	if err != nil {
		s.logger.WithField("user_id", req.UserID).Error(fmt.Sprintf("Failed to update profile status: %v", err))
		return nil, err
	}
	s.logger.WithField("user_id", req.UserID).WithField("status", string(req.Status)).Info("Profile status updated")
	return profile, nil
}

func (s *UserService) generateMagicCode() (string, error) {
	code, err := crypto.GenerateMagicCode(magicCodeLength)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to generate magic code: %v", err))
		return "", fmt.Errorf("failed to generate magic code: %w", err)
	}
	return code, nil
}

func (s *UserService) generateAuthToken(user *domain.User, sessionID string, expiresAt time.Time) string {
	token := paseto.NewToken()
	token.SetIssuedAt(time.Now())
	token.SetNotBefore(time.Now())
	token.SetExpiration(expiresAt)
	token.SetString("user_id", user.ID)
	token.SetString("session_id", sessionID)
	token.SetString("email", user.Email)
	return token.V4Sign(s.privateKey, nil)
}
