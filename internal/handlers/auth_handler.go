package handlers

import (
	"errors"
	"net/http"

	"golfacademy/internal/models"
	"golfacademy/internal/security"
	"golfacademy/internal/service"
	"golfacademy/internal/validation"
)

// AuthHandler handles registration, login and account endpoints
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
	csrf         *security.CSRFGenerator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService, csrf *security.CSRFGenerator) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		csrf:         csrf,
	}
}

type userResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Handicap    float64 `json:"handicap"`
	HomeCourse  string  `json:"homeCourse"`
	WeeklyEmail bool    `json:"weeklyEmail"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Handicap:    user.Handicap,
		HomeCourse:  user.HomeCourse,
		WeeklyEmail: user.WeeklyEmail,
	}
}

type sessionResponse struct {
	User      userResponse `json:"user"`
	CSRFToken string       `json:"csrfToken"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "email already registered", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "registration failed", "Failed to register user", err)
		}
		return
	}

	h.startSession(w, r, user, http.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "login failed", "Failed to log in", err)
		}
		return
	}

	h.startSession(w, r, user, http.StatusOK)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	session, err := h.authService.CreateSession(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "login failed", "Failed to create session", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))

	csrfToken, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "login failed", "Failed to generate CSRF token", err)
		return
	}

	respondJSON(w, status, sessionResponse{
		User:      toUserResponse(user),
		CSRFToken: csrfToken,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "logout failed", "Failed to delete session", err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// IssueToken handles POST /api/auth/token: a bearer token for API clients,
// issued to an already-authenticated user
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	token, err := h.tokenService.Issue(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to issue token", "Failed to issue token", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		Name        string  `json:"name"`
		HomeCourse  string  `json:"homeCourse"`
		Handicap    float64 `json:"handicap"`
		WeeklyEmail bool    `json:"weeklyEmail"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.UpdateProfile(user.ID, req.Name, req.HomeCourse, req.Handicap, req.WeeklyEmail); err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "failed to update profile", "Failed to update profile", err)
		}
		return
	}

	updated, err := h.authService.GetUser(user.ID)
	if err != nil || updated == nil {
		respondWithError(w, http.StatusInternalServerError, "failed to update profile", "Failed to reload user", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(updated))
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "current password is incorrect", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to change password", "Failed to change password", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ForgotPassword handles POST /api/auth/forgot-password. Always responds OK
// so the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to send reset email", "Failed to request password reset", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			respondWithError(w, http.StatusBadRequest, "invalid or expired reset token", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to reset password", "Failed to reset password", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
