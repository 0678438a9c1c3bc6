// Package addcomment реализует HTTP-обработчик для добавления комментария к отправлению.
package addcomment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление комментариев.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики отправлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления комментария.
type Service interface {
	AddComment(ctx context.Context, id int64, authorUID, body string) (*models.Shipment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить комментарий к отправлению
// @Description Добавляет комментарий от имени текущего пользователя и возвращает обновленное отправление.
// @Tags Shipments
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор отправления"
// @Param request body models.DummyComment true "Текст комментария"
// @Success 200 {object} models.Shipment "Отправление с комментариями"
// @Failure 400 {object} response.Message "Некорректные данные"
// @Failure 401 {object} response.Message "Пользователь не авторизован"
// @Failure 404 {object} response.Message "Отправление не найдено"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /shipments/{id}/comments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shipment.addcomment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid shipment id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Identificador de envío no válido"))
		return
	}

	var req models.DummyComment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	authorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || authorUID == "" {
		log.Error("author uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("No hay token, autorización denegada"))
		return
	}

	updated, err := h.service.AddComment(r.Context(), id, authorUID, req.Body)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("shipment not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Envío no encontrado"))
			return
		}
		log.Error("failed to add comment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al agregar el comentario"))
		return
	}

	log.Info("comment added", slog.Int64("id", id))
	render.JSON(w, r, updated)
}
