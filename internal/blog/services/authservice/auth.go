package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/userrepo"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/internal/pkg/jwtauth"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo Repository
	sessions SessionStore
	cfg      config.Auth
	lg       logger.Logger
	hashCost int
}

type Repository interface {
	CreateUser(context.Context, models.User) (models.User, error)
	GetUserByEmail(context.Context, string) (models.User, error)
	GetUserByUsername(context.Context, string) (models.User, error)
}

// SessionStore keeps revoked token ids. It is optional.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Option func(*AuthService)

// WithSessionStore enables logout by remembering revoked tokens in ss.
func WithSessionStore(ss SessionStore) Option {
	return func(as *AuthService) {
		as.sessions = ss
	}
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(as *AuthService) {
		as.hashCost = cost
	}
}

func New(userRepo Repository, cfg config.Auth, lg logger.Logger, opts ...Option) *AuthService {
	as := &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		lg:       lg,
		hashCost: bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(as)
	}

	return as
}

func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if err := as.ensureAvailable(ctx, req.Email, req.Username); err != nil {
		return RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), as.hashCost)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("generate from password error: %w", err)
	}

	u, err := as.userRepo.CreateUser(ctx, models.User{ //nolint:exhaustruct
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			return RegisterResponse{}, fmt.Errorf("email or username already in use: %w", apperr.ErrUnprocessable)
		}

		return RegisterResponse{}, fmt.Errorf("create user error: %w", err)
	}

	token, err := jwtauth.GetToken(u.ID, as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("can't get token error: %w", err)
	}

	as.lg.Infof("registered user %s", u.ID)

	return RegisterResponse{
		Email:    u.Email,
		Username: u.Username,
		Token:    token,
	}, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return "", fmt.Errorf("user with email %q: %w", email, apperr.ErrNotFound)
		}

		return "", fmt.Errorf("get user error: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", fmt.Errorf("wrong password: %w", apperr.ErrUnauthorized)
	}

	token, err := jwtauth.GetToken(u.ID, as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	return token, nil
}

// Authenticate validates a bearer token and returns the session it carries.
func (as *AuthService) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := jwtauth.ParseToken(token, as.cfg.Secret)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	if as.sessions != nil && claims.Id != "" {
		revoked, err := as.sessions.IsRevoked(ctx, claims.Id)
		if err != nil {
			return Session{}, fmt.Errorf("check revoked error: %w", err)
		}

		if revoked {
			return Session{}, fmt.Errorf("token revoked: %w", apperr.ErrUnauthorized)
		}
	}

	return Session{
		UserID:    claims.Subject,
		TokenID:   claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// Logout revokes the session's token. Without a session store it is a no-op
// and the token stays valid until it expires.
func (as *AuthService) Logout(ctx context.Context, s Session) error {
	if as.sessions == nil || s.TokenID == "" {
		return nil
	}

	if err := as.sessions.Revoke(ctx, s.TokenID, time.Until(s.ExpiresAt)); err != nil {
		return fmt.Errorf("revoke error: %w", err)
	}

	return nil
}

func (as *AuthService) ensureAvailable(ctx context.Context, email, username string) error {
	_, err := as.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("email %q already in use: %w", email, apperr.ErrUnprocessable)
	case !errors.Is(err, userrepo.ErrNotFound):
		return fmt.Errorf("get user by email error: %w", err)
	}

	_, err = as.userRepo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return fmt.Errorf("username %q already in use: %w", username, apperr.ErrUnprocessable)
	case !errors.Is(err, userrepo.ErrNotFound):
		return fmt.Errorf("get user by username error: %w", err)
	}

	return nil
}
