// Package services holds the session lifecycle shared by controllers
// and middleware.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-storefront/errs"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Tokens is the pair handed to a client after sign in or refresh
type Tokens struct {
	Access    string
	Refresh   string
	SessionID primitive.ObjectID
}

type AuthService struct {
	sessions      repository.SessionRepository
	users         repository.UserRepository
	tokens        *utils.TokenManager
	secureCookies bool
	now           func() time.Time
}

func NewAuthService(store *repository.Store, tokens *utils.TokenManager, secureCookies bool) *AuthService {
	return &AuthService{
		sessions:      store.Sessions,
		users:         store.Users,
		tokens:        tokens,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

// Authenticate opens a new session for user and issues tokens bound to it
func (s *AuthService) Authenticate(ctx context.Context, user models.User, ip, userAgent string) (Tokens, error) {
	if userAgent == "" {
		userAgent = "unknown"
	}
	session := &models.Session{
		UserID:    user.ID,
		Valid:     true,
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: s.now().Add(s.tokens.RefreshExpiry),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return Tokens{}, fmt.Errorf("creating session: %w", err)
	}
	return s.issue(user, session.ID)
}

// Refresh exchanges a refresh token for a new pair on the same session
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (Tokens, models.User, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return Tokens{}, models.User{}, errs.ErrInvalidSession
	}
	session, err := s.activeSession(ctx, claims.SessionID)
	if err != nil {
		return Tokens{}, models.User{}, err
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if errors.Is(err, errs.ErrNotFound) {
		return Tokens{}, models.User{}, errs.ErrInvalidSession
	}
	if err != nil {
		return Tokens{}, models.User{}, err
	}

	tokens, err := s.issue(user, session.ID)
	return tokens, user, err
}

// VerifyAccess parses an access token and checks its session is still live
func (s *AuthService) VerifyAccess(ctx context.Context, accessToken string) (*utils.AccessClaims, error) {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	if _, err = s.activeSession(ctx, claims.SessionID); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout invalidates the session named by sessionID. Unknown sessions are
// ignored so logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil
	}
	if err = s.sessions.Invalidate(ctx, id); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}

// SessionFromRequest finds the session id carried by the request's
// cookies or bearer token.
func (s *AuthService) SessionFromRequest(r *http.Request) string {
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		if claims, err := s.tokens.ParseRefreshToken(c.Value); err == nil {
			return claims.SessionID
		}
	}
	access := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		access = c.Value
	}
	if access != "" {
		if claims, err := s.tokens.ParseAccessToken(access); err == nil {
			return claims.SessionID
		}
	}
	return ""
}

func (s *AuthService) InvalidateUserSessions(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.sessions.InvalidateAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidating sessions: %w", err)
	}
	log.Ctx(ctx).Info().Str("component", "auth").Str("user_id", userID.Hex()).Msg("sessions invalidated")
	return nil
}

func (s *AuthService) SetAuthCookies(w http.ResponseWriter, tokens Tokens) {
	http.SetCookie(w, s.cookie(AccessTokenCookie, tokens.Access, s.tokens.AccessExpiry))
	http.SetCookie(w, s.cookie(RefreshTokenCookie, tokens.Refresh, s.tokens.RefreshExpiry))
}

func (s *AuthService) ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := s.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

// ShortLivedCookie is used for OAuth state and verifier values
func (s *AuthService) ShortLivedCookie(name, value string, ttl time.Duration) *http.Cookie {
	return s.cookie(name, value, ttl)
}

func (s *AuthService) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *AuthService) activeSession(ctx context.Context, sessionID string) (models.Session, error) {
	id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return models.Session{}, errs.ErrInvalidSession
	}
	session, err := s.sessions.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return models.Session{}, errs.ErrInvalidSession
	}
	if err != nil {
		return models.Session{}, err
	}
	if !session.Active(s.now()) {
		return models.Session{}, errs.ErrInvalidSession
	}
	return session, nil
}

func (s *AuthService) issue(user models.User, sessionID primitive.ObjectID) (Tokens, error) {
	access, err := s.tokens.GenerateAccessToken(user, sessionID.Hex())
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(sessionID.Hex())
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh, SessionID: sessionID}, nil
}
