package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/audit"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/notification"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/jwt"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/oauth"
)

const resetTokenTTL = 1 * time.Hour

type AuthServiceImpl struct {
	userRepo    user.Repository
	jwtService  jwt.Service
	google      oauth.GoogleService
	dispatcher  notification.Dispatcher
	auditor     audit.Recorder
	frontendURL string
	now         func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	jwtService jwt.Service,
	google oauth.GoogleService,
	dispatcher notification.Dispatcher,
	auditor audit.Recorder,
	frontendURL string,
	now func() time.Time,
) auth.Service {
	if now == nil {
		now = time.Now
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		jwtService:  jwtService,
		google:      google,
		dispatcher:  dispatcher,
		auditor:     auditor,
		frontendURL: frontendURL,
		now:         now,
	}
}

// record writes an account-trail entry attributed to the account itself.
func (a *AuthServiceImpl) record(ctx context.Context, action string, u user.User) {
	a.auditor.Record(ctx, audit.Log{
		ActorID:    &u.ID,
		ActorEmail: &u.Email,
		Action:     action,
		Entity:     "user",
		EntityID:   &u.ID,
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Register implements auth.Service. New accounts start unapproved and
// unverified; a verification email goes out immediately.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken, err := randomToken()
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to generate verification token: %w", err)
	}

	newUser := user.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      &passwordHash,
		Role:              user.RoleEmployee,
		IsApproved:        false,
		IsVerified:        false,
		VerificationToken: &verifyToken,
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err == nil {
			newUser.DateOfBirth = &dob
		}
	}

	created, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}

	verifyLink := fmt.Sprintf("%s/verify-email?token=%s", a.frontendURL, verifyToken)
	a.dispatcher.VerifyEmail(ctx, created, verifyLink)
	a.record(ctx, "account.register", created)

	return user.NewUserResponse(created), nil
}

// Login implements auth.Service. The gate order is credentials, then
// approval, then verification; no token is issued unless all pass.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, user.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, user.ErrInvalidCredentials
	}

	if !userData.IsApproved {
		return auth.LoginResponse{}, user.ErrAccountNotApproved
	}
	if !userData.IsVerified {
		return auth.LoginResponse{}, user.ErrEmailNotVerified
	}

	a.record(ctx, "account.login", userData)

	return a.issueToken(userData)
}

func (a *AuthServiceImpl) issueToken(userData user.User) (auth.LoginResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt - a.now().Unix(),
		User:        user.NewUserResponse(userData),
	}, nil
}

// VerifyEmail implements auth.Service.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	userData, err := a.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	userData.IsVerified = true
	userData.VerificationToken = nil

	if _, err := a.userRepo.Update(ctx, userData); err != nil {
		return err
	}

	return nil
}

// ForgotPassword implements auth.Service. Unknown emails return success
// to avoid account enumeration.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := a.now().Add(resetTokenTTL)
	userData.ResetToken = &token
	userData.ResetTokenExpiry = &expiry

	if _, err := a.userRepo.Update(ctx, userData); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", a.frontendURL, token)
	a.dispatcher.PasswordReset(ctx, userData, resetLink, expiry)

	return nil
}

// ResetPassword implements auth.Service.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if userData.ResetTokenExpiry == nil || userData.ResetTokenExpiry.Before(a.now()) {
		return user.ErrTokenExpired
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userData.PasswordHash = &passwordHash
	userData.ResetToken = nil
	userData.ResetTokenExpiry = nil

	if _, err := a.userRepo.Update(ctx, userData); err != nil {
		return err
	}

	a.dispatcher.PasswordChanged(ctx, userData)
	a.record(ctx, "account.password_reset", userData)

	return nil
}

// ChangePassword implements auth.Service. The current password must
// match before the new one is stored.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if userData.PasswordHash == nil {
		return user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userData.PasswordHash = &passwordHash
	if _, err := a.userRepo.Update(ctx, userData); err != nil {
		return err
	}

	a.dispatcher.PasswordChanged(ctx, userData)
	a.record(ctx, "account.password_change", userData)

	return nil
}

// Me implements auth.Service.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(userData), nil
}

// GoogleRedirectURL implements auth.Service.
func (a *AuthServiceImpl) GoogleRedirectURL(userAgent string) (string, string) {
	state := a.google.GenerateState(userAgent)
	return a.google.RedirectURL(state), state
}

// GoogleCallback implements auth.Service. Google verifies the email, so
// the verification gate is satisfied; the approval gate still applies.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, state, expectedState, code string) (auth.LoginResponse, error) {
	if state == "" || state != expectedState {
		return auth.LoginResponse{}, auth.ErrInvalidOAuthState
	}

	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrOAuthExchange
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrOAuthExchange
	}

	userData, err := a.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, user.ErrOAuthEmailUnknown
		}
		return auth.LoginResponse{}, err
	}

	if info.VerifiedEmail && !userData.IsVerified {
		provider := "google"
		userData.IsVerified = true
		userData.VerificationToken = nil
		userData.OAuthProvider = &provider
		if userData, err = a.userRepo.Update(ctx, userData); err != nil {
			return auth.LoginResponse{}, err
		}
	}

	if !userData.IsApproved {
		return auth.LoginResponse{}, user.ErrAccountNotApproved
	}
	if !userData.IsVerified {
		return auth.LoginResponse{}, user.ErrEmailNotVerified
	}

	a.record(ctx, "account.login", userData)

	return a.issueToken(userData)
}

// currentUserID pulls the authenticated user id from the request token.
func currentUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}
