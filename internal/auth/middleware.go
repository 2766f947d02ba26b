package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const TokenIDKey contextKey = "tokenID"

// AuthMiddleware rejects requests without a valid token. The token comes from
// a Bearer Authorization header or, for websocket upgrades that cannot set
// headers, from the token query parameter. With authentication disabled every
// request passes.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := r.URL.Query().Get("token")
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization format"})
				return
			}
			token = parts[1]
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			return
		}

		tokenID, err := s.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), TokenIDKey, tokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TokenIDFromContext(ctx context.Context) string {
	tokenID, _ := ctx.Value(TokenIDKey).(string)
	return tokenID
}
