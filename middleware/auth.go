package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-storefront/errs"
	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware accepts an access token from the access_token cookie or
// a Bearer header. When that is missing or stale it falls back to the
// refresh_token cookie and rotates both cookies.
func AuthMiddleware(auth *services.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token := accessToken(r); token != "" {
				if claims, err := auth.VerifyAccess(ctx, token); err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
					return
				}
			}

			cookie, err := r.Cookie(services.RefreshTokenCookie)
			if err != nil || cookie.Value == "" {
				utils.WriteError(w, r, errs.ErrNotLoggedIn)
				return
			}

			tokens, _, err := auth.Refresh(ctx, cookie.Value)
			if err != nil {
				log.Ctx(ctx).Debug().Err(err).Str("component", "auth").Msg("refresh rejected")
				auth.ClearAuthCookies(w)
				utils.WriteError(w, r, errs.ErrNotLoggedIn)
				return
			}
			claims, err := auth.VerifyAccess(ctx, tokens.Access)
			if err != nil {
				utils.WriteError(w, r, errs.ErrNotLoggedIn)
				return
			}

			auth.SetAuthCookies(w, tokens)
			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// RequireRole ensures that the user has one of the given roles
func RequireRole(roles ...models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utils.WriteError(w, r, errs.ErrNotLoggedIn)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteError(w, r, errs.ErrForbidden)
		})
	}
}

func WithClaims(ctx context.Context, claims *utils.AccessClaims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*utils.AccessClaims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.AccessClaims)
	return claims, ok
}

// UserID returns the authenticated user's id, or the zero id
func UserID(ctx context.Context) primitive.ObjectID {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(services.AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
