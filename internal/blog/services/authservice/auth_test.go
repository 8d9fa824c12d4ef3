package authservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/inmemory"
	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/internal/pkg/jwtauth"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

var cfg = config.Auth{TTL: time.Hour, Secret: "test-secret"}

type revokedSet map[string]time.Duration

func (rs revokedSet) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	rs[tokenID] = ttl

	return nil
}

func (rs revokedSet) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := rs[tokenID]

	return ok, nil
}

type brokenStore struct{}

func (brokenStore) Revoke(context.Context, string, time.Duration) error { return errors.New("down") }

func (brokenStore) IsRevoked(context.Context, string) (bool, error) { return false, errors.New("down") }

type AuthSuite struct {
	suite.Suite
	store   *inmemory.Store
	revoked revokedSet
	as      *authservice.AuthService
	ctx     context.Context
}

func (s *AuthSuite) SetupTest() {
	s.store = inmemory.New()
	s.revoked = make(revokedSet)
	s.as = authservice.New(s.store, cfg, logger.Nop(),
		authservice.WithSessionStore(s.revoked), authservice.WithHashCost(bcrypt.MinCost))
	s.ctx = context.Background()
}

func (s *AuthSuite) register(email, username string) authservice.RegisterResponse {
	resp, err := s.as.Register(s.ctx, authservice.RegisterRequest{
		Email:    email,
		Password: "123456",
		Username: username,
	})
	s.Require().NoError(err)

	return resp
}

func (s *AuthSuite) TestRegister() {
	resp := s.register("alice@mail.com", "alice")

	s.Require().Equal("alice@mail.com", resp.Email)
	s.Require().Equal("alice", resp.Username)
	s.Require().NotEmpty(resp.Token)

	u, err := s.store.GetUserByEmail(s.ctx, "alice@mail.com")
	s.Require().NoError(err)
	s.Require().NotEqual("123456", u.PasswordHash)
	s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("123456")))

	claims, err := jwtauth.ParseToken(resp.Token, cfg.Secret)
	s.Require().NoError(err)
	s.Require().Equal(u.ID, claims.Subject)
}

func (s *AuthSuite) TestRegisterDuplicate() {
	s.register("alice@mail.com", "alice")

	_, err := s.as.Register(s.ctx, authservice.RegisterRequest{
		Email: "alice@mail.com", Password: "x", Username: "other",
	})
	s.Require().ErrorIs(err, apperr.ErrUnprocessable)

	_, err = s.as.Register(s.ctx, authservice.RegisterRequest{
		Email: "other@mail.com", Password: "x", Username: "alice",
	})
	s.Require().ErrorIs(err, apperr.ErrUnprocessable)

	s.Require().Equal(1, s.store.UserCount())
}

func (s *AuthSuite) TestLogin() {
	s.register("alice@mail.com", "alice")

	_, err := s.as.Login(s.ctx, "missing@x.com", "123456")
	s.Require().ErrorIs(err, apperr.ErrNotFound)

	_, err = s.as.Login(s.ctx, "alice@mail.com", "wrong")
	s.Require().ErrorIs(err, apperr.ErrUnauthorized)

	token, err := s.as.Login(s.ctx, "alice@mail.com", "123456")
	s.Require().NoError(err)
	s.Require().NotEmpty(token)

	claims, err := jwtauth.ParseToken(token, cfg.Secret)
	s.Require().NoError(err)
	s.Require().InDelta(time.Hour.Seconds(), time.Until(time.Unix(claims.ExpiresAt, 0)).Seconds(), 5)
}

func (s *AuthSuite) TestAuthenticateAndLogout() {
	resp := s.register("alice@mail.com", "alice")

	sess, err := s.as.Authenticate(s.ctx, resp.Token)
	s.Require().NoError(err)
	s.Require().NotEmpty(sess.UserID)
	s.Require().NotEmpty(sess.TokenID)

	s.Require().NoError(s.as.Logout(s.ctx, sess))
	s.Require().Contains(s.revoked, sess.TokenID)
	s.Require().True(s.revoked[sess.TokenID] > 0)

	_, err = s.as.Authenticate(s.ctx, resp.Token)
	s.Require().ErrorIs(err, apperr.ErrUnauthorized)
}

func (s *AuthSuite) TestAuthenticateRejectsBadTokens() {
	_, err := s.as.Authenticate(s.ctx, "garbage")
	s.Require().ErrorIs(err, apperr.ErrUnauthorized)

	foreign, err := jwtauth.GetToken("507f1f77bcf86cd799439011", time.Hour, "other-secret")
	s.Require().NoError(err)

	_, err = s.as.Authenticate(s.ctx, foreign)
	s.Require().ErrorIs(err, apperr.ErrUnauthorized)
}

func (s *AuthSuite) TestStoreFailureIsNotUnauthorized() {
	as := authservice.New(s.store, cfg, logger.Nop(),
		authservice.WithSessionStore(brokenStore{}), authservice.WithHashCost(bcrypt.MinCost))

	token, err := jwtauth.GetToken("507f1f77bcf86cd799439011", time.Hour, cfg.Secret)
	s.Require().NoError(err)

	_, err = as.Authenticate(s.ctx, token)
	s.Require().Error(err)
	s.Require().NotErrorIs(err, apperr.ErrUnauthorized)
}

func (s *AuthSuite) TestLogoutWithoutStore() {
	as := authservice.New(s.store, cfg, logger.Nop(), authservice.WithHashCost(bcrypt.MinCost))

	resp, err := as.Register(s.ctx, authservice.RegisterRequest{
		Email: "bob@mail.com", Password: "pw", Username: "bob",
	})
	s.Require().NoError(err)

	sess, err := as.Authenticate(s.ctx, resp.Token)
	s.Require().NoError(err)
	s.Require().NoError(as.Logout(s.ctx, sess))

	_, err = as.Authenticate(s.ctx, resp.Token)
	s.Require().NoError(err)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}
