package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RangiraDave/Test-copilot/internal/apperror"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
	"github.com/RangiraDave/Test-copilot/pkg/mailer"
	"github.com/RangiraDave/Test-copilot/pkg/session"
	"github.com/RangiraDave/Test-copilot/pkg/token"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, userID, email, username string) (*session.Session, error) {
	args := m.Called(ctx, userID, email, username)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) Get(ctx context.Context, userID string) (*session.Session, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) Rotate(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService(users *mockUserRepo, sessions *mockSessionStore, mail EmailPublisher) *AuthService {
	issuer, _ := token.NewIssuer("test-reset-secret")
	return &AuthService{
		Users:    users,
		Sessions: sessions,
		JWT:      helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour),
		Tokens:   issuer,
		Mail:     mail,
		Logger:   quietLogger(),
		ResetURL: "http://localhost:8080/reset-password",
		AppName:  "university-copilot",
		MailOn:   true,
	}
}

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestSignup(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "dave").Return(nil, postgres.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "dave" &&
			u.Email == "dave@example.com" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "Secret123" &&
			u.ID != ""
	})).Return(nil)

	svc := newAuthService(users, new(mockSessionStore), nil)
	u, err := svc.Signup(context.Background(), SignupInput{
		Email:     "Dave@Example.com",
		Username:  "dave",
		Password:  "Secret123",
		FirstName: "Dave",
		LastName:  "R",
	})
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", u.Email, "email should be normalized to lowercase")
	assert.True(t, helpers.CheckPassword(u.PasswordHash, "Secret123"))
	users.AssertExpectations(t)
}

func TestSignupDuplicateUsername(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "dave").Return(&entity.User{ID: "u1", Username: "dave"}, nil)

	svc := newAuthService(users, new(mockSessionStore), nil)
	_, err := svc.Signup(context.Background(), SignupInput{Email: "x@example.com", Username: "dave", Password: "Secret123"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "username already exists")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupDuplicateEmailRace(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "dave").Return(nil, postgres.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(uniqueViolation("users_email_key"))

	svc := newAuthService(users, new(mockSessionStore), nil)
	_, err := svc.Signup(context.Background(), SignupInput{Email: "x@example.com", Username: "dave", Password: "Secret123"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "email already exists")
}

func TestSignupDuplicateUsernameRace(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "dave").Return(nil, postgres.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(uniqueViolation("users_username_key"))

	svc := newAuthService(users, new(mockSessionStore), nil)
	_, err := svc.Signup(context.Background(), SignupInput{Email: "x@example.com", Username: "dave", Password: "Secret123"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "username already exists")
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("Secret123")
	require.NoError(t, err)
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "dave@example.com").
		Return(&entity.User{ID: "u1", Email: "dave@example.com", PasswordHash: hash}, nil)

	svc := newAuthService(users, new(mockSessionStore), nil)
	u, err := svc.Login(context.Background(), "Dave@Example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	hash, err := helpers.HashPassword("Secret123")
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "known@example.com").
		Return(&entity.User{ID: "u1", Email: "known@example.com", PasswordHash: hash}, nil)
	users.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, postgres.ErrNotFound)

	svc := newAuthService(users, new(mockSessionStore), nil)

	_, errWrongPassword := svc.Login(context.Background(), "known@example.com", "WrongPass1")
	_, errUnknownEmail := svc.Login(context.Background(), "unknown@example.com", "Secret123")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	assert.True(t, apperror.IsAuth(errWrongPassword))
	assert.True(t, apperror.IsAuth(errUnknownEmail))
}

func TestIssueTokensAndRefresh(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("Create", mock.Anything, "u1", "dave@example.com", "dave").
		Return(&session.Session{ID: "sid1", UserID: "u1"}, nil)
	sessions.On("Get", mock.Anything, "u1").Return(&session.Session{ID: "sid1", UserID: "u1"}, nil)
	sessions.On("Rotate", mock.Anything, "u1").Return("sid2", nil)

	svc := newAuthService(new(mockUserRepo), sessions, nil)
	pair, err := svc.IssueTokens(context.Background(), &entity.User{ID: "u1", Email: "dave@example.com", Username: "dave"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	newPair, userID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.NotEmpty(t, newPair.AccessToken)

	claims, err := svc.JWT.ParseAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sid2", claims.SessionID, "refresh should rotate the session id")
}

func TestRefreshRejectsStaleSession(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("Create", mock.Anything, "u1", "dave@example.com", "dave").
		Return(&session.Session{ID: "sid1", UserID: "u1"}, nil)
	// The live session no longer matches the token's sid.
	sessions.On("Get", mock.Anything, "u1").Return(&session.Session{ID: "sid-other", UserID: "u1"}, nil)

	svc := newAuthService(new(mockUserRepo), sessions, nil)
	pair, err := svc.IssueTokens(context.Background(), &entity.User{ID: "u1", Email: "dave@example.com", Username: "dave"})
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperror.IsAuth(err))
	sessions.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, postgres.ErrNotFound)
	pub := new(mockPublisher)

	svc := newAuthService(users, new(mockSessionStore), pub)
	err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err, "unknown emails must not be distinguishable from known ones")
	pub.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything)
}

func TestRequestPasswordResetEnqueuesJob(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "dave@example.com").
		Return(&entity.User{ID: "u1", Email: "dave@example.com", FirstName: "Dave"}, nil)

	pub := new(mockPublisher)
	pub.On("PublishJSON", mock.Anything, mock.MatchedBy(func(body any) bool {
		job, ok := body.(mailer.EmailJob)
		if !ok {
			return false
		}
		link, _ := job.Data["ResetURL"].(string)
		return job.To == "dave@example.com" &&
			job.Template == mailer.TemplatePasswordReset &&
			job.Data["Name"] == "Dave" &&
			len(link) > len("http://localhost:8080/reset-password?token=")
	})).Return(nil)

	svc := newAuthService(users, new(mockSessionStore), pub)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "dave@example.com"))
	pub.AssertExpectations(t)
}

func TestConfirmPasswordReset(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "dave@example.com").
		Return(&entity.User{ID: "u1", Email: "dave@example.com"}, nil)
	users.On("UpdatePassword", mock.Anything, "u1", mock.MatchedBy(func(hash string) bool {
		return helpers.CheckPassword(hash, "NewSecret1")
	})).Return(nil)

	sessions := new(mockSessionStore)
	sessions.On("Delete", mock.Anything, "u1").Return(nil)

	svc := newAuthService(users, sessions, nil)
	tok, err := svc.Tokens.Issue("dave@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), tok, "NewSecret1"))
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestConfirmPasswordResetBadToken(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users, new(mockSessionStore), nil)

	err := svc.ConfirmPasswordReset(context.Background(), "not-a-token", "NewSecret1")
	require.Error(t, err)
	assert.True(t, apperror.IsToken(err))
	assert.Contains(t, err.Error(), "invalid or has expired")
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPasswordResetWrongSecret(t *testing.T) {
	otherIssuer, err := token.NewIssuer("some-other-secret")
	require.NoError(t, err)
	tok, err := otherIssuer.Issue("dave@example.com")
	require.NoError(t, err)

	users := new(mockUserRepo)
	svc := newAuthService(users, new(mockSessionStore), nil)
	resetErr := svc.ConfirmPasswordReset(context.Background(), tok, "NewSecret1")
	require.Error(t, resetErr)
	assert.True(t, apperror.IsToken(resetErr))
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPasswordResetWeakPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{name: "too short", password: "Ab1", want: "at least 8 characters"},
		{name: "no digit", password: "Abcdefgh", want: "digit"},
		{name: "no uppercase", password: "abcdefg1", want: "uppercase"},
		{name: "no lowercase", password: "ABCDEFG1", want: "lowercase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepo)
			users.On("GetByEmail", mock.Anything, "dave@example.com").
				Return(&entity.User{ID: "u1", Email: "dave@example.com"}, nil)

			svc := newAuthService(users, new(mockSessionStore), nil)
			tok, err := svc.Tokens.Issue("dave@example.com")
			require.NoError(t, err)

			resetErr := svc.ConfirmPasswordReset(context.Background(), tok, tt.password)
			require.Error(t, resetErr)
			assert.True(t, apperror.IsValidation(resetErr))
			assert.Contains(t, resetErr.Error(), tt.want)
			users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteUserClearsSession(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Delete", mock.Anything, "u1").Return(nil)
	sessions := new(mockSessionStore)
	sessions.On("Delete", mock.Anything, "u1").Return(nil)

	svc := newAuthService(users, sessions, nil)
	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	sessions.AssertExpectations(t)
}

func TestDeleteUserNotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Delete", mock.Anything, "missing").Return(postgres.ErrNotFound)

	svc := newAuthService(users, new(mockSessionStore), nil)
	err := svc.DeleteUser(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, "u1").
		Return(&entity.User{ID: "u1", FirstName: "Dave", LastName: "R", Location: "Kigali"}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.FirstName == "David" && u.LastName == "R" && u.Location == "Kigali"
	})).Return(nil)

	svc := newAuthService(users, new(mockSessionStore), nil)
	u, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{FirstName: "David"})
	require.NoError(t, err)
	assert.Equal(t, "David", u.FirstName)
	users.AssertExpectations(t)
}
