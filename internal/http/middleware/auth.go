package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
)

// Key for storing user ID and session ID in context
type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SessionIDKey contextKey = "session_id"
	AuthUserKey  contextKey = "auth_user"
)

// AuthenticatedUser represents an operator that has been authenticated
type AuthenticatedUser struct {
	ID    string
	Email string
}

// AuthUserFromContext returns the authenticated operator stored by RequireAuth
func AuthUserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthenticatedUser)
	return user, ok
}

// AuthServiceInterface defines the interface for authentication operations
type AuthServiceInterface interface {
	VerifyUserSession(ctx context.Context, userID string, sessionID string) (*domain.User, error)
}

// ProfileServiceInterface resolves operator profiles for the approval gate
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// AuthConfig holds the configuration for the auth middleware
type AuthConfig struct {
	PublicKey paseto.V4AsymmetricPublicKey
}

// NewAuthMiddleware creates a new auth middleware with the given public key
func NewAuthMiddleware(publicKey paseto.V4AsymmetricPublicKey) *AuthConfig {
	return &AuthConfig{
		PublicKey: publicKey,
	}
}

// RequireAuth creates a middleware that verifies the PASETO token and user session
func (ac *AuthConfig) RequireAuth(authService AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token := parts[1]

			// Parse and verify the token
			parser := paseto.NewParser()
			parser.AddRule(paseto.NotExpired())

			// Verify token and get claims
			verified, err := parser.ParseV4Public(ac.PublicKey, token, nil)
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
				return
			}

			// Get user ID from claims
			userID, err := verified.GetString("user_id")
			if err != nil {
				http.Error(w, "User ID not found in token", http.StatusUnauthorized)
				return
			}

			// Get session ID from claims
			sessionID, err := verified.GetString("session_id")
			if err != nil {
				http.Error(w, "Session ID not found in token", http.StatusUnauthorized)
				return
			}

			// Verify user session
			user, err := authService.VerifyUserSession(r.Context(), userID, sessionID)
			if err != nil {
				switch err {
				case domain.ErrSessionExpired:
					http.Error(w, "Session expired", http.StatusUnauthorized)
				case domain.ErrUserNotFound:
					http.Error(w, "User not found", http.StatusUnauthorized)
				default:
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			// Add authenticated user to context
			authUser := &AuthenticatedUser{
				ID:    user.ID,
				Email: user.Email,
			}
			ctx := context.WithValue(r.Context(), AuthUserKey, authUser)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireApproved creates a middleware that only lets approved operators
// through. It must run after RequireAuth.
func RequireApproved(profiles ProfileServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authUser, ok := AuthUserFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			profile, err := profiles.GetProfile(r.Context(), authUser.ID)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if profile.Status != domain.ProfileStatusApproved {
				http.Error(w, "Account pending approval", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin creates a middleware that restricts a route to the configured
// admin allow-list. It must run after RequireAuth.
func RequireAdmin(isAdminEmail func(string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authUser, ok := AuthUserFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if !isAdminEmail(authUser.Email) {
				http.Error(w, "Admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
