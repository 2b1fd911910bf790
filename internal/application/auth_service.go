package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	repo "github.com/oksasatya/linkshort/internal/domain/repository"
	"github.com/oksasatya/linkshort/pkg/apperror"
	"github.com/oksasatya/linkshort/pkg/helpers"
	"github.com/oksasatya/linkshort/pkg/metrics"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgAuthRequired       = "authentication required"
)

type AuthService struct {
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Revoker TokenRevoker
	Mailer  WelcomeMailer
	Metrics *metrics.Metrics
}

type AuthOption func(*AuthService)

func WithRevoker(r TokenRevoker) AuthOption { return func(s *AuthService) { s.Revoker = r } }

func WithWelcomeMailer(m WelcomeMailer) AuthOption { return func(s *AuthService) { s.Mailer = m } }

func WithAuthMetrics(m *metrics.Metrics) AuthOption { return func(s *AuthService) { s.Metrics = m } }

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, opts ...AuthOption) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	s := &AuthService{Users: users, JWT: jwt, Logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates an account. The returned user never carries the password hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperror.Validation("name, email and password are required")
	}
	if !helpers.PasswordFits(in.Password) {
		return nil, apperror.Validation("password must be at most 72 bytes")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, apperror.Internal("create user", err)
	}
	s.Metrics.IncUsersRegistered()
	s.Logger.WithField("user_id", u.ID).Info("user registered")

	if s.Mailer != nil {
		if err := s.Mailer.Welcome(ctx, u.Name, u.Email); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
		}
	}
	return publicUser(u), nil
}

// Login verifies email/password and issues a bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.Metrics.IncLoginFailures()
		return nil, apperror.Authentication(msgInvalidCredentials, nil)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Internal("lookup user", err)
		}
		helpers.BurnCompare(password)
		s.Metrics.IncLoginFailures()
		return nil, apperror.Authentication(msgInvalidCredentials, nil)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.Metrics.IncLoginFailures()
		return nil, apperror.Authentication(msgInvalidCredentials, nil)
	}

	token, claims, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, apperror.Internal("issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: publicUser(u)}, nil
}

// ResolveCredential validates a bearer token and returns the identity it encodes.
func (s *AuthService) ResolveCredential(ctx context.Context, token string) (*entity.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperror.Authentication("missing token", nil)
	}
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Authentication("invalid token", err)
	}
	if s.Revoker != nil && claims.ID != "" {
		revoked, rErr := s.Revoker.IsRevoked(ctx, claims.ID)
		if rErr != nil {
			// revocation store outage: the signature and expiry checks above still hold
			s.Logger.WithError(rErr).Warn("token revocation lookup failed")
		} else if revoked {
			return nil, apperror.Authentication("invalid token", errors.New("token revoked"))
		}
	}
	id := &entity.Identity{UserID: claims.UserID(), Email: claims.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Me returns the profile of the caller.
func (s *AuthService) Me(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	if identity == nil {
		return nil, apperror.Authentication(msgAuthRequired, nil)
	}
	u, err := s.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Authentication(msgInvalidCredentials, err)
		}
		return nil, apperror.Internal("lookup user", err)
	}
	return publicUser(u), nil
}

// Logout revokes the caller's token until it expires. Without a revocation store it only
// confirms the identity; clients drop the token themselves.
func (s *AuthService) Logout(ctx context.Context, identity *entity.Identity) error {
	if identity == nil {
		return apperror.Authentication(msgAuthRequired, nil)
	}
	if s.Revoker == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.Revoker.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return apperror.Internal("revoke token", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func publicUser(u *entity.User) *entity.User {
	out := *u
	out.Password = ""
	return &out
}
