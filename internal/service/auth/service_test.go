package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/jwt"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/oauth"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
}

type fakeUserRepo struct {
	users map[string]user.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	f.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.seq)
	}
	u.CreatedAt = fixedNow()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByVerificationToken(_ context.Context, token string) (user.User, error) {
	for _, u := range f.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (user.User, error) {
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) ListByRole(_ context.Context, _ user.Role) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListPendingApproval(_ context.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListWithBirthday(_ context.Context, _ time.Month, _ int) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type dispatcherStub struct {
	notification.Dispatcher
	verifyLinks  []string
	resetLinks   []string
	pwChangedFor []string
}

func (d *dispatcherStub) VerifyEmail(_ context.Context, _ user.User, link string) {
	d.verifyLinks = append(d.verifyLinks, link)
}

func (d *dispatcherStub) PasswordReset(_ context.Context, _ user.User, link string, _ time.Time) {
	d.resetLinks = append(d.resetLinks, link)
}

func (d *dispatcherStub) PasswordChanged(_ context.Context, u user.User) {
	d.pwChangedFor = append(d.pwChangedFor, u.ID)
}

type auditStub struct {
	actions []string
}

func (a *auditStub) Record(_ context.Context, entry audit.Log) {
	a.actions = append(a.actions, entry.Action)
}

func (a *auditStub) List(_ context.Context, _, _ int) ([]audit.LogResponse, error) {
	return nil, nil
}

func newTestService() (auth.Service, *fakeUserRepo, *dispatcherStub, *auditStub) {
	userRepo := newFakeUserRepo()
	dispatcher := &dispatcherStub{}
	auditor := &auditStub{}
	jwtSvc := jwt.NewJWTService("test-secret-key", "2h")
	googleSvc := oauth.NewGoogleService("client-id", "client-secret", "http://localhost:8080/callback", []string{"email"})
	svc := NewAuthService(userRepo, jwtSvc, googleSvc, dispatcher, auditor, "http://localhost:3000", fixedNow)
	return svc, userRepo, dispatcher, auditor
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string, approved, verified bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashStr := string(hash)

	created, err := repo.Create(context.Background(), user.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: &hashStr,
		Role:         user.RoleEmployee,
		IsApproved:   approved,
		IsVerified:   verified,
	})
	require.NoError(t, err)
	return created
}

func TestRegister_StartsUnapprovedAndSendsVerification(t *testing.T) {
	svc, repo, dispatcher, auditor := newTestService()

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:     "New Hire",
		Email:    "hire@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.False(t, resp.IsApproved)
	assert.False(t, resp.IsVerified)
	require.Len(t, dispatcher.verifyLinks, 1)
	assert.Contains(t, dispatcher.verifyLinks[0], "http://localhost:3000/verify-email?token=")

	stored, err := repo.GetByEmail(context.Background(), "hire@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.VerificationToken)
	assert.NotEqual(t, "password123", *stored.PasswordHash, "password must be stored hashed")
	assert.Equal(t, []string{"account.register"}, auditor.actions)
}

func TestLogin_GateOrder(t *testing.T) {
	svc, repo, _, auditor := newTestService()

	seedUser(t, repo, "pending@example.com", false, false)
	seedUser(t, repo, "unverified@example.com", true, false)
	seedUser(t, repo, "ok@example.com", true, true)

	// Wrong password comes before any account-state gate.
	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "pending@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "pending@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrAccountNotApproved)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "unverified@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrEmailNotVerified)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ok@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "ok@example.com", resp.User.Email)

	// Only the successful login leaves a trail entry.
	assert.Equal(t, []string{"account.login"}, auditor.actions)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestVerifyEmail_ClearsToken(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:     "New Hire",
		Email:    "hire@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(context.Background(), "hire@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)

	require.NoError(t, svc.VerifyEmail(context.Background(), *stored.VerificationToken))

	verified, err := repo.GetByEmail(context.Background(), "hire@example.com")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationToken)
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	svc, _, dispatcher, _ := newTestService()

	err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Empty(t, dispatcher.resetLinks)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, repo, _, _ := newTestService()

	u := seedUser(t, repo, "ok@example.com", true, true)
	token := "expired-token"
	expiry := fixedNow().Add(-time.Minute)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	_, err := repo.Update(context.Background(), u)
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:    token,
		Password: "newpassword123",
	})
	assert.ErrorIs(t, err, user.ErrTokenExpired)
}

func TestResetPassword_Success(t *testing.T) {
	svc, repo, dispatcher, auditor := newTestService()

	u := seedUser(t, repo, "ok@example.com", true, true)
	token := "valid-token"
	expiry := fixedNow().Add(30 * time.Minute)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	_, err := repo.Update(context.Background(), u)
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:    token,
		Password: "newpassword123",
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetTokenExpiry)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*updated.PasswordHash), []byte("newpassword123")))
	assert.Equal(t, []string{u.ID}, dispatcher.pwChangedFor)
	assert.Equal(t, []string{"account.password_reset"}, auditor.actions)

	// Old password no longer works.
	_, err = newTestLoginCheck(svc, "ok@example.com", "password123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func newTestLoginCheck(svc auth.Service, email, password string) (auth.LoginResponse, error) {
	return svc.Login(context.Background(), auth.LoginRequest{Email: email, Password: password})
}

func authedCtx(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, repo, dispatcher, auditor := newTestService()

	u := seedUser(t, repo, "ok@example.com", true, true)

	err := svc.ChangePassword(authedCtx(t, u.ID), auth.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "newpassword123",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Empty(t, dispatcher.pwChangedFor)
	assert.Empty(t, auditor.actions)
}

func TestChangePassword_Success(t *testing.T) {
	svc, repo, dispatcher, auditor := newTestService()

	u := seedUser(t, repo, "ok@example.com", true, true)

	err := svc.ChangePassword(authedCtx(t, u.ID), auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword123",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, dispatcher.pwChangedFor)
	assert.Equal(t, []string{"account.password_change"}, auditor.actions)

	_, err = newTestLoginCheck(svc, "ok@example.com", "newpassword123")
	require.NoError(t, err)
	_, err = newTestLoginCheck(svc, "ok@example.com", "password123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
