package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMP-BookingService/internal/api/handlers"
	"github.com/m04kA/SMP-BookingService/internal/domain"
)

type contextKey string

const (
	actorContextKey contextKey = "actor"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Auth извлекает идентификацию вызывающего из заголовков X-User-ID и X-User-Role
// и кладёт её в контекст запроса. Идентификация доверенная - заголовки
// проставляет вышестоящий API gateway
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		role := domain.Role(r.Header.Get(headerUserRole))
		switch role {
		case domain.RoleClient, domain.RoleProvider, domain.RoleAdmin:
		case "":
			// Без заголовка роли считаем вызывающего клиентом
			role = domain.RoleClient
		default:
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-Role")
			return
		}

		actor := domain.Actor{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor извлекает вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}

// GetUserID извлекает ID вызывающего из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
