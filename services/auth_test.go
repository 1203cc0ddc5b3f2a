package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront/errs"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/repository/memory"
	"go-storefront/utils"

	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *repository.Store
	svc   *AuthService
	user  models.User
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.svc = NewAuthService(s.store, utils.NewTokenManager("secret", time.Minute, time.Hour), true)

	s.user = models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleCustomer}
	s.Require().NoError(s.store.Users.Create(s.ctx, &s.user))
}

func (s *AuthServiceTestSuite) TestAuthenticateCreatesSession() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "10.0.0.1", "")
	s.Require().NoError(err)

	session, err := s.store.Sessions.FindByID(s.ctx, tokens.SessionID)
	s.Require().NoError(err)
	s.True(session.Valid)
	s.Equal("unknown", session.UserAgent)
	s.Equal(s.user.ID, session.UserID)

	claims, err := s.svc.VerifyAccess(s.ctx, tokens.Access)
	s.Require().NoError(err)
	s.Equal(s.user.Email, claims.Email)
}

func (s *AuthServiceTestSuite) TestRefreshKeepsSession() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	refreshed, user, err := s.svc.Refresh(s.ctx, tokens.Refresh)
	s.Require().NoError(err)
	s.Equal(tokens.SessionID, refreshed.SessionID)
	s.Equal(s.user.ID, user.ID)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsAccessToken() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	_, _, err = s.svc.Refresh(s.ctx, tokens.Access)
	s.ErrorIs(err, errs.ErrInvalidSession)
}

func (s *AuthServiceTestSuite) TestLogoutInvalidatesTokens() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Logout(s.ctx, tokens.SessionID.Hex()))
	s.NoError(s.svc.Logout(s.ctx, tokens.SessionID.Hex()))
	s.NoError(s.svc.Logout(s.ctx, "garbage"))

	_, _, err = s.svc.Refresh(s.ctx, tokens.Refresh)
	s.ErrorIs(err, errs.ErrInvalidSession)
	_, err = s.svc.VerifyAccess(s.ctx, tokens.Access)
	s.ErrorIs(err, errs.ErrInvalidSession)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsExpiredSessionAndMissingUser() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	s.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, _, err = s.svc.Refresh(s.ctx, tokens.Refresh)
	s.ErrorIs(err, errs.ErrInvalidSession)

	s.svc.now = time.Now
	s.Require().NoError(s.store.Users.Delete(s.ctx, s.user.ID))
	_, _, err = s.svc.Refresh(s.ctx, tokens.Refresh)
	s.ErrorIs(err, errs.ErrInvalidSession)

	_, _, err = s.svc.Refresh(s.ctx, "junk")
	s.ErrorIs(err, errs.ErrInvalidSession)
}

func (s *AuthServiceTestSuite) TestInvalidateUserSessions() {
	first, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)
	second, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.InvalidateUserSessions(s.ctx, s.user.ID))

	for _, tokens := range []Tokens{first, second} {
		_, _, err = s.svc.Refresh(s.ctx, tokens.Refresh)
		s.ErrorIs(err, errs.ErrInvalidSession)
	}
}

func (s *AuthServiceTestSuite) TestCookies() {
	tokens, err := s.svc.Authenticate(s.ctx, s.user, "ip", "ua")
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	s.svc.SetAuthCookies(rec, tokens)
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 2)
	for _, c := range cookies {
		s.True(c.HttpOnly)
		s.True(c.Secure)
		s.Equal(http.SameSiteLaxMode, c.SameSite)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	s.Equal(tokens.SessionID.Hex(), s.svc.SessionFromRequest(req))

	rec = httptest.NewRecorder()
	s.svc.ClearAuthCookies(rec)
	for _, c := range rec.Result().Cookies() {
		s.Equal("", c.Value)
		s.True(c.MaxAge < 0)
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
