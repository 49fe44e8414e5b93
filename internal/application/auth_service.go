package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/apperror"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
	"github.com/RangiraDave/Test-copilot/pkg/mailer"
	"github.com/RangiraDave/Test-copilot/pkg/session"
	"github.com/RangiraDave/Test-copilot/pkg/token"
	"github.com/RangiraDave/Test-copilot/pkg/validation"
)

// EmailPublisher enqueues email jobs for the worker process.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// SessionStore is the subset of pkg/session used by the auth flows.
type SessionStore interface {
	Create(ctx context.Context, userID, email, username string) (*session.Session, error)
	Get(ctx context.Context, userID string) (*session.Session, error)
	Rotate(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// AuthService implements signup, login, sessions, and the password-reset flow.
type AuthService struct {
	Users    repository.UserRepository
	Sessions SessionStore
	JWT      *helpers.JWTManager
	Tokens   *token.Issuer
	Mail     EmailPublisher
	Logger   *logrus.Logger
	ResetURL string
	AppName  string
	MailOn   bool
}

// TokenPair is the access/refresh pair minted on login and refresh.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SignupInput carries the signup form fields after binding validation.
type SignupInput struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Gender      string
	PhoneNumber string
	Location    string
}

// Signup validates uniqueness, hashes the password, and persists the new user.
// The caller binds the session afterwards via IssueTokens.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if existing, err := s.Users.GetByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, apperror.NewConflict("username already exists", nil)
	} else if err != nil && !errors.Is(err, postgres.ErrNotFound) {
		return nil, apperror.NewDatabase("failed to check username", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.NewDatabase("failed to hash password", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       in.Gender,
		PhoneNumber:  in.PhoneNumber,
		Location:     in.Location,
	}

	if err := s.Users.Create(ctx, u); err != nil {
		// A concurrent signup can slip past the username pre-check; the unique
		// index is the source of truth and exactly one insert wins.
		if constraint, ok := postgres.UniqueViolation(err); ok {
			if strings.Contains(constraint, "username") {
				return nil, apperror.NewConflict("username already exists", nil)
			}
			return nil, apperror.NewConflict("email already exists", nil)
		}
		return nil, apperror.NewDatabase("failed to create user", err)
	}
	return u, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the identical error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil || u == nil {
		return nil, apperror.NewAuth("invalid email or password", nil)
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, apperror.NewAuth("invalid email or password", nil)
	}
	return u, nil
}

// IssueTokens records a session and mints the cookie token pair for it.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sess, err := s.Sessions.Create(ctx, u.ID, u.Email, u.Username)
	if err != nil {
		return TokenPair{}, apperror.NewDatabase("failed to create session", err)
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sess.ID)
	if err != nil {
		return TokenPair{}, apperror.New(apperror.Unknown, "failed to generate access token", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sess.ID)
	if err != nil {
		return TokenPair{}, apperror.New(apperror.Unknown, "failed to generate refresh token", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates a refresh token against the live session, rotates the
// session id, and mints a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperror.NewAuth("invalid refresh token", nil)
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil || sess == nil || sess.ID != claims.SessionID {
		return TokenPair{}, "", apperror.NewAuth("invalid refresh token", nil)
	}
	sid, err := s.Sessions.Rotate(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", apperror.NewDatabase("failed to rotate session", err)
	}
	access, aexp, err := s.JWT.GenerateAccessToken(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", apperror.New(apperror.Unknown, "failed to generate access token", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", apperror.New(apperror.Unknown, "failed to generate refresh token", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, claims.UserID, nil
}

// Logout clears the caller's session binding.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		return apperror.NewDatabase("failed to delete session", err)
	}
	return nil
}

// GetProfile returns the user for the bound session identity.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, apperror.NewNotFound("user not found", err)
	}
	return u, nil
}

// UpdateProfileInput carries the editable profile fields; empty values are
// left untouched.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	Gender      string
	PhoneNumber string
	Location    string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, apperror.NewNotFound("user not found", err)
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Gender != "" {
		u.Gender = in.Gender
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if in.Location != "" {
		u.Location = in.Location
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, apperror.NewDatabase("failed to update profile", err)
	}
	return u, nil
}

// DeleteUser removes an account and its session.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperror.NewNotFound("user not found", nil)
		}
		return apperror.NewDatabase("failed to delete user", err)
	}
	_ = s.Sessions.Delete(ctx, id)
	return nil
}

// RequestPasswordReset issues a reset token and enqueues the email when the
// address is registered. Callers answer identically either way; only the
// server-side log records whether anything was sent.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil || u == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("password reset requested for unknown email")
		}
		return nil
	}

	tok, err := s.Tokens.Issue(u.Email)
	if err != nil {
		return apperror.New(apperror.Unknown, "failed to issue reset token", err)
	}
	link := s.ResetURL + "?token=" + tok

	if s.Mail != nil && s.MailOn {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplatePasswordReset,
			Data: map[string]any{
				"Name":      u.FirstName,
				"ResetURL":  link,
				"ExpiresIn": "1 hour",
				"AppName":   s.AppName,
			},
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("failed to enqueue reset email")
		}
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("password reset link issued")
	}
	return nil
}

// ConfirmPasswordReset verifies the token, enforces the password policy, and
// persists the new digest. The stored digest is untouched on any failure.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tok, newPassword string) error {
	email, err := s.Tokens.Verify(tok, token.DefaultMaxAge)
	if err != nil {
		return apperror.NewToken("the password reset link is invalid or has expired", nil)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		// The account vanished between issue and redemption. Reporting the
		// same generic message keeps the token surface information-free.
		return apperror.NewToken("the password reset link is invalid or has expired", nil)
	}
	if err := validation.CheckPasswordPolicy(newPassword); err != nil {
		return apperror.NewValidation(err.Error(), nil)
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperror.NewDatabase("failed to hash password", err)
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperror.NewDatabase("failed to update password", err)
	}
	// Any live session predates the new password; drop it.
	_ = s.Sessions.Delete(ctx, u.ID)
	return nil
}
