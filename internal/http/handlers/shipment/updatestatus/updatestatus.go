// Package updatestatus реализует HTTP-обработчик для смены статуса отправления.
// Доступен только пользователям с ролью администратора.
package updatestatus

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

	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	services "github.com/magabrotheeeer/shipment-tracker/internal/services/shipment"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на смену статуса отправления.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики отправлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Shipment, error)
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
// @Summary Обновить статус отправления
// @Description Устанавливает новый статус и публикует событие об изменении.
// @Tags Shipments
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор отправления"
// @Param request body models.DummyStatus true "Новый статус"
// @Success 200 {object} models.Shipment "Обновленное отправление"
// @Failure 400 {object} response.Message "Некорректный статус"
// @Failure 403 {object} response.Message "Недостаточно прав"
// @Failure 404 {object} response.Message "Отправление не найдено"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /shipments/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shipment.updatestatus"
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

	var req models.DummyStatus
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

	updated, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			log.Error("invalid status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Estado no válido"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("shipment not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Envío no encontrado"))
		default:
			log.Error("failed to update status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Error al actualizar el estado"))
		}
		return
	}

	log.Info("shipment status updated",
		slog.Int64("id", id),
		slog.String("status", updated.Status))
	render.JSON(w, r, updated)
}
