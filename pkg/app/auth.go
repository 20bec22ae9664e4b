// Package app contains the use-case orchestrators. Every method receives the
// authenticated tenant and user identity as explicit arguments derived from a
// verified token; nothing here trusts ids supplied by unauthenticated input
// or holds them in process-wide state.
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/domain"
)

// AuthService implements registration, login and token-based identity.
type AuthService struct {
	users     domain.UserRepository
	tenants   domain.TenantRepository
	registrar domain.Registrar
	secrets   domain.MFASecretRepository
	tokens    *auth.TokenService
	mfaIssuer string
}

// NewAuthService creates an auth service.
func NewAuthService(
	users domain.UserRepository,
	tenants domain.TenantRepository,
	registrar domain.Registrar,
	secrets domain.MFASecretRepository,
	tokens *auth.TokenService,
	mfaIssuer string,
) *AuthService {
	return &AuthService{
		users:     users,
		tenants:   tenants,
		registrar: registrar,
		secrets:   secrets,
		tokens:    tokens,
		mfaIssuer: mfaIssuer,
	}
}

// RegisterParams holds the input for Register.
type RegisterParams struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	TenantName   string
	TenantDomain string
}

// Register creates a tenant and its first user, then returns a signed token
// for that user. Email uniqueness is global: the lookup runs before the
// tenant exists, so it cannot be scoped. Tenant and user are written in one
// transaction.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (string, error) {
	taken, err := s.users.ExistsByEmail(ctx, p.Email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.ErrEmailTaken
	}

	taken, err = s.tenants.ExistsByDomain(ctx, p.TenantDomain)
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.ErrDomainTaken
	}

	tenant, err := domain.NewTenant(p.TenantName, p.TenantDomain)
	if err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return "", err
	}

	user, err := domain.NewUser(p.Email, tenant.ID, hash, p.FirstName, p.LastName)
	if err != nil {
		return "", err
	}

	if err := s.registrar.CreateTenantWithOwner(ctx, tenant, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID, user.TenantID, user.Email)
}

// Login authenticates by email and password and returns a signed token.
// Unknown email, wrong password and inactive account all surface as the same
// ErrInvalidCredentials so callers cannot enumerate accounts. When the user
// has MFA enabled a valid TOTP code is also required.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.ErrInvalidCredentials
	}

	if user.MFAEnabled {
		secret, err := s.secrets.GetByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if !auth.ValidateTOTPCode(totpCode, secret) {
			return "", domain.ErrInvalidMFACode
		}
	}

	return s.tokens.Issue(user.ID, user.TenantID, user.Email)
}

// CurrentUser resolves a bearer token to its user. A user that no longer
// exists or has been deactivated is reported as ErrNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrNotFound
	}

	return user, nil
}

// SetupMFA generates a TOTP secret for the user and returns it along with the
// otpauth enrollment URL. The secret is stored immediately but MFA is not
// enforced until ActivateMFA confirms the user's authenticator with a valid
// code.
func (s *AuthService) SetupMFA(ctx context.Context, userID uuid.UUID) (secret, url string, err error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user.MFAEnabled {
		return "", "", domain.ErrMFAAlreadyEnabled
	}

	secret, url, err = auth.GenerateTOTPSecret(s.mfaIssuer, user.Email)
	if err != nil {
		return "", "", err
	}

	if err := s.secrets.Upsert(ctx, userID, secret); err != nil {
		return "", "", err
	}

	return secret, url, nil
}

// ActivateMFA turns on MFA enforcement after verifying a code from the
// freshly enrolled authenticator.
func (s *AuthService) ActivateMFA(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFAEnabled {
		return domain.ErrMFAAlreadyEnabled
	}

	secret, err := s.secrets.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrMFANotEnabled
		}
		return err
	}
	if !auth.ValidateTOTPCode(code, secret) {
		return domain.ErrInvalidMFACode
	}

	user.MFAEnabled = true
	return s.users.Update(ctx, user)
}

// DisableMFA turns MFA off again. Requires a valid current code.
func (s *AuthService) DisableMFA(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAEnabled {
		return domain.ErrMFANotEnabled
	}

	secret, err := s.secrets.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.ValidateTOTPCode(code, secret) {
		return domain.ErrInvalidMFACode
	}

	user.MFAEnabled = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.secrets.Delete(ctx, userID)
}
