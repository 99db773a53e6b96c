package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// TokenHeader is the request header carrying the bearer token. The API
// uses a custom header rather than the Authorization scheme — clients
// send the raw JWT, no "Bearer " prefix.
const TokenHeader = "x-auth-token"

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means no other package can read or
// shadow the userID we store in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the x-auth-token header, validates it, and
// stores the userID in the request context. A missing header and an
// invalid token are distinguished in the response message but both
// produce 401 and stop the chain.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				unauthorized(w, "Token does not exist, authorization denied")
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				unauthorized(w, "Token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the
// request context. Returns ("", false) if the request carried no valid
// token — which never happens behind RequireAuth, but handlers check
// anyway rather than trusting middleware ordering.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// unauthorized writes the 401 body directly. The middleware cannot use
// the handler package's helpers without an import cycle, so it owns its
// one response shape.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg}) //nolint:errcheck
}
