package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
	"github.com/SscSPs/simple_invoice_app/internal/platform/config"
	"github.com/SscSPs/simple_invoice_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues the application JWT.
type tokenService struct {
	BaseService
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: cfg.JWTSecret,
		expiry: cfg.JWTExpiryDuration,
		issuer: cfg.JWTIssuer,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if user == nil || user.UserID == "" {
		return "", time.Time{}, fmt.Errorf("%w: cannot issue a token without a user", apperrors.ErrValidation)
	}
	return utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer, s.now())
}

// --- GoogleOAuthSvcFacade Implementation ---

// idTokenValidator matches idtoken.Validate.
type idTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	clientID string
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
	validate     idTokenValidator
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// GoogleIdentity extracts the signing-in user from a validated Google ID token payload.
func GoogleIdentity(payload *idtoken.Payload) (domain.User, error) {
	if payload == nil || payload.Subject == "" {
		return domain.User{}, fmt.Errorf("%w: google token has no subject", apperrors.ErrUnauthorized)
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: google token has no email", apperrors.ErrUnauthorized)
	}
	name, _ := payload.Claims["name"].(string)
	return domain.User{
		UserID:       payload.Subject,
		Email:        email,
		Name:         name,
		AuthProvider: domain.ProviderGoogle,
	}, nil
}

// --- FirebaseAuthSvc Implementation ---

// FirebaseTokenVerifier is the part of *auth.Client the service uses.
type FirebaseTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseAuthService struct {
	verifier FirebaseTokenVerifier
}

// NewFirebaseAuthService wraps a Firebase Auth client.
func NewFirebaseAuthService(verifier FirebaseTokenVerifier) portssvc.FirebaseAuthSvc {
	return &firebaseAuthService{verifier: verifier}
}

// VerifyIDToken checks a Firebase ID token and returns the identity it carries.
func (s *firebaseAuthService) VerifyIDToken(ctx context.Context, idToken string) (*domain.User, error) {
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: firebase ID token: %v", apperrors.ErrUnauthorized, err)
	}
	if token.UID == "" {
		return nil, fmt.Errorf("%w: firebase token has no uid", apperrors.ErrUnauthorized)
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	return &domain.User{
		UserID:       token.UID,
		Email:        email,
		Name:         name,
		AuthProvider: domain.ProviderFirebase,
	}, nil
}
