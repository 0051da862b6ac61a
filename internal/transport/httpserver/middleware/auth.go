package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userdomain "fintrack/internal/domain/user"
	"fintrack/pkg/logger"
)

// User is the authenticated caller placed into the request context.
type User struct {
	ID    string
	Name  string
	Email string
}

// UserGetter resolves a verified token subject to a stored user; a
// token whose user no longer exists is rejected.
type UserGetter interface {
	GetByID(ctx context.Context, userID string) (*userdomain.User, error)
}

type JWTAuth struct {
	tokens *TokenManager
	users  UserGetter
	log    logger.Logger
}

func NewJWTAuth(tokens *TokenManager, users UserGetter, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, users: users, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.tokens.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		stored, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: user lookup failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithUser(r.Context(), User{ID: stored.ID, Name: stored.Name, Email: stored.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey int

const userKey contextKey = iota

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
