package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const claimsKey contextKey = "claims"

type Claims struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
	jwt.RegisteredClaims
}

// Subscriber parses a bearer token when one is present and stores its
// claims in the request context. It never rejects: catalog reads are open,
// and an absent or invalid token simply means the caller is not subscribed.
func Subscriber(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}
			token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// SubscribedFromContext reports whether the caller carries a subscribed
// claim. No token means not subscribed.
func SubscribedFromContext(ctx context.Context) bool {
	claims, ok := ClaimsFromContext(ctx)
	return ok && claims.Subscribed
}
