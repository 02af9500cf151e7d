package middleware

import (
	"net/http"
	"strings"

	"github.com/Gagan41/ecom/internal/transport"
	"github.com/Gagan41/ecom/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the storefront's JWTs. The signing secret is injected at
// construction instead of read from the environment so tests and main wire it
// explicitly.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// extractToken prefers the Authorization header and falls back to the
// access_token cookie the web frontend sets.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func (a *Auth) parse(r *http.Request) (jwt.MapClaims, bool) {
	tokenStr := extractToken(r)
	if tokenStr == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// RequireUser admits any request carrying a valid token and stores the caller
// identity in the context. Rejections follow the in-band contract: HTTP 200
// with success=false.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			transport.Failure(w, "Not Authorized Login Again")
			return
		}

		uid, ok := claims["user_id"].(float64)
		if !ok {
			transport.Failure(w, "Not Authorized Login Again")
			return
		}

		role, _ := claims["role"].(string)
		ctx := utils.SetUserContext(r.Context(), uint(uid), role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin additionally demands the admin role claim.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			transport.Failure(w, "Not Authorized Login Again")
			return
		}

		role, _ := claims["role"].(string)
		if role != utils.RoleAdmin {
			transport.Failure(w, "Not Authorized Login Again")
			return
		}

		uid, _ := claims["user_id"].(float64)
		ctx := utils.SetUserContext(r.Context(), uint(uid), role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
