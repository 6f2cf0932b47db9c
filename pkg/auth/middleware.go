package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tanacoin/platform/pkg/utils"
)

type ContextKey string

const (
	UserIDKey      ContextKey = "userID"
	IsSuperuserKey ContextKey = "isSuperuser"
)

// Middleware checks the bearer token and puts the claim set into the request
// context. Expired tokens answer 401, malformed ones 403.
func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					utils.RespondWithError(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				utils.RespondWithError(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, IsSuperuserKey, claims.IsSuperuser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser must be placed after Middleware.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isSuperuser, _ := r.Context().Value(IsSuperuserKey).(bool)
		if !isSuperuser {
			utils.RespondWithError(w, http.StatusForbidden, "Unauthorized access. Admins only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
