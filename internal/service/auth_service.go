package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"golfacademy/internal/models"
	"golfacademy/internal/repository"
	"golfacademy/internal/security"
	"golfacademy/internal/validation"
)

var (
	// ErrInvalidCredentials is returned for a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidResetToken is returned for an unknown, used or expired
	// password reset token
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrSessionExpired is returned for a missing or expired session
	ErrSessionExpired = errors.New("session expired")
)

const resetTokenDuration = time.Hour

// AuthService handles registration, login, sessions and password resets
type AuthService struct {
	users           *repository.UserRepository
	email           *EmailService
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. email may be nil when SES is
// not configured; password reset emails are then skipped with a log line.
func NewAuthService(users *repository.UserRepository, email *EmailService, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		email:           email,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.CreateUser(email, hash, name)
}

// Login verifies credentials and returns the user
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginWithOAuth finds or creates the account for an external identity.
// An existing account with the same email is linked rather than duplicated.
func (s *AuthService) LoginWithOAuth(provider, subject, email, name string) (*models.User, error) {
	user, err := s.users.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := s.users.LinkOAuthProvider(user.ID, provider, subject); err != nil {
			return nil, err
		}
		return user, nil
	}

	// New account; an unguessable password keeps the login form closed
	hash, err := security.HashPassword(uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err = s.users.CreateUser(email, hash, name)
	if err != nil {
		return nil, err
	}
	if err := s.users.LinkOAuthProvider(user.ID, provider, subject); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(userID int64) (*models.User, error) {
	return s.users.GetUserByID(userID)
}

// CreateSession starts a new session for a user
func (s *AuthService) CreateSession(userID int64) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	return s.users.CreateSession(sessionID, userID, time.Now().Add(s.sessionDuration))
}

// ValidateSession resolves a session ID to its user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.users.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetUserByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionExpired
	}
	return user, nil
}

// Logout ends a session
func (s *AuthService) Logout(sessionID string) error {
	return s.users.DeleteSession(sessionID)
}

// UpdateProfile changes a user's profile fields
func (s *AuthService) UpdateProfile(userID int64, name, homeCourse string, handicap float64, weeklyEmail bool) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if handicap < -10 || handicap > 54 {
		return validation.ValidationError{Field: "handicap", Message: "handicap must be between -10 and 54"}
	}
	return s.users.UpdateProfile(userID, name, homeCourse, handicap, weeklyEmail)
}

// ChangePassword verifies the current password and sets a new one
func (s *AuthService) ChangePassword(userID int64, current, newPassword string) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil || !security.CheckPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(userID, hash)
}

// RequestPasswordReset creates a reset token and emails it. Unknown emails
// are silently accepted so the endpoint does not leak accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.users.DeleteUserPasswordResetTokens(user.ID); err != nil {
		return err
	}

	token := uuid.New().String()
	if err := s.users.CreatePasswordResetToken(token, user.ID, time.Now().Add(resetTokenDuration)); err != nil {
		return err
	}

	if s.email == nil {
		log.Printf("Password reset requested for user %d but email is not configured", user.ID)
		return nil
	}
	return s.email.SendPasswordReset(ctx, user.Email, user.Name, token)
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.users.GetPasswordResetToken(token)
	if err != nil {
		return err
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return ErrInvalidResetToken
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(resetToken.UserID, hash); err != nil {
		return err
	}
	return s.users.MarkPasswordResetTokenAsUsed(token)
}

// CleanupExpired removes expired sessions and reset tokens. Run
// periodically from a background worker.
func (s *AuthService) CleanupExpired() {
	if err := s.users.DeleteExpiredSessions(); err != nil {
		log.Printf("Failed to clean up expired sessions: %v", err)
	}
	if err := s.users.DeleteExpiredPasswordResetTokens(); err != nil {
		log.Printf("Failed to clean up expired reset tokens: %v", err)
	}
}
