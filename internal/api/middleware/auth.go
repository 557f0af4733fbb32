package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

// ErrInvalidClaims токен подписан верно, но не содержит пользователя или роли
var ErrInvalidClaims = errors.New("middleware: invalid token claims")

// Claims данные токена, выданного внешней системой аутентификации.
// sub содержит ID пользователя.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен (HS256) и кладет пользователя и роль в контекст
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := ParseToken(tokenStr, key)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, actor.UserID)
			ctx = context.WithValue(ctx, roleKey, actor.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseToken проверяет подпись и срок действия токена и возвращает пользователя
func ParseToken(tokenStr string, key []byte) (domain.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}
	if !token.Valid {
		return domain.Actor{}, ErrInvalidClaims
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, ErrInvalidClaims
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Actor{}, ErrInvalidClaims
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole возвращает роль пользователя из контекста
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// GetActor возвращает пользователя с ролью из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := GetRole(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}

// WithActor кладет пользователя в контекст (для тестов обработчиков)
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.UserID)
	return context.WithValue(ctx, roleKey, actor.Role)
}
