package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"aidanwoods.dev/go-paseto"

	"github.com/archetype-studio/archetype/internal/domain"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/pkg/logger"
)

type UserHandler struct {
	userService domain.UserServiceInterface
	publicKey   paseto.V4AsymmetricPublicKey
	logger      logger.Logger
}

func NewUserHandler(userService domain.UserServiceInterface, publicKey paseto.V4AsymmetricPublicKey, logger logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		publicKey:   publicKey,
		logger:      logger,
	}
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	// Public routes (no auth required)
	mux.HandleFunc("POST /api/user.signin", h.SignIn)
	mux.HandleFunc("POST /api/user.verify", h.VerifyCode)

	// Protected routes (auth required)
	authMiddleware := middleware.NewAuthMiddleware(h.publicKey)
	requireAuth := authMiddleware.RequireAuth(h.userService)

	mux.Handle("GET /api/user.me", requireAuth(http.HandlerFunc(h.GetCurrentUser)))
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input domain.SignInInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteJSONError(w, "Invalid SignIn request body", http.StatusBadRequest)
		return
	}

	code, err := h.userService.SignIn(r.Context(), input)
	if err != nil {
		if domain.IsValidationError(err) {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Sign-in failed")
		WriteJSONError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	// In development mode, the code is returned inline.
	// In production, the code is only delivered by email.
	response := map[string]string{
		"message": "Magic code sent to your email",
	}
	if code != "" {
		response["code"] = code
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *UserHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var input domain.VerifyCodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteJSONError(w, "Invalid VerifyCode request body", http.StatusBadRequest)
		return
	}

	response, err := h.userService.VerifyCode(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrCodeExpired) {
			WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Code verification failed")
		WriteJSONError(w, "Failed to verify code", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetCurrentUser returns the authenticated operator and their profile
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), authUser.ID)
	if err != nil {
		WriteJSONError(w, "User not found", http.StatusNotFound)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), authUser.ID)
	if err != nil {
		h.logger.WithField("user_id", authUser.ID).Error("Failed to retrieve profile")
		WriteJSONError(w, "Failed to retrieve profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"profile": profile,
	})
}
