// Package middlewarectx содержит HTTP middleware для проверки токена сессии
// и правил доступа.
//
// TokenMiddleware проверяет наличие и валидность токена в заголовке
// x-auth-token и в случае успеха добавляет в контекст идентификатор
// пользователя, его роль и служебные флаги.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	jwtlib "github.com/magabrotheeeer/shipment-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
)

// TokenHeader — заголовок, в котором клиент передаёт токен сессии.
const TokenHeader = "x-auth-token"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "useruid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// IsPasswordChanged — ключ флага смены первоначального пароля
	IsPasswordChanged Key = "ispasswordchanged"
)

// Service описывает интерфейс сервиса для валидации токена сессии.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwtlib.CustomClaims, error)
}

// TokenMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке x-auth-token.
//
// Если токен валиден, добавляет данные сессии в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func TokenMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.TokenMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				log.Error("missing auth token header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("No hay token, autorización denegada"))
				return
			}

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token no válido"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Role, claims.Role)
			ctx = context.WithValue(ctx, IsPasswordChanged, claims.IsPasswordChanged)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
