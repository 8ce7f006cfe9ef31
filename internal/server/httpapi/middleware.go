package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = 0

// authenticate verifies the bearer token and stores the account ID in the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			writeError(w, common.ErrInvalidAuthShape)
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), s.jwtSecret)
		if err != nil {
			writeError(w, common.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
