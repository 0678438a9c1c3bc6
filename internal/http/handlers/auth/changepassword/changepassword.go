// Package changepassword реализует HTTP-обработчик смены пароля пользователя.
//
// Текущий пароль повторно сверяется с хэшем в хранилище, новый пароль
// заменяет его одной записью вместе с выставлением флага смены пароля.
package changepassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	services "github.com/magabrotheeeer/shipment-tracker/internal/services/auth"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы на смену пароля.
type Handler struct {
	log         *slog.Logger
	authService Service
	validate    *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Description Проверяет текущий пароль и заменяет его новым.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Текущий и новый пароль"
// @Success 200 {object} response.Message "Пароль изменён"
// @Failure 400 {object} response.Message "Неверный текущий пароль"
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /change-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("No hay token, autorización denegada"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userUID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Error("current password mismatch")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Contraseña actual incorrecta"))
			return
		}
		log.Error("failed to change password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al cambiar la contraseña"))
		return
	}

	log.Info("password changed", slog.String("user_uid", userUID))
	render.JSON(w, r, response.OK("Contraseña cambiada exitosamente"))
}
