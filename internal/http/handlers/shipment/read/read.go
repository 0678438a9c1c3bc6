// Package read реализует HTTP-обработчик для получения отправления по идентификатору.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение отправления.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики отправлений
}

// Service описывает интерфейс бизнес-логики чтения отправления.
type Service interface {
	GetByID(ctx context.Context, id int64) (*models.Shipment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить отправление
// @Description Возвращает отправление по его идентификатору вместе с комментариями.
// @Tags Shipments
// @Produce  json
// @Param id path int true "Идентификатор отправления"
// @Success 200 {object} models.Shipment "Найденное отправление"
// @Failure 400 {object} response.Message "Некорректный идентификатор"
// @Failure 404 {object} response.Message "Отправление не найдено"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /shipments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shipment.read"
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

	shipment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("shipment not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Envío no encontrado"))
			return
		}
		log.Error("failed to get shipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al obtener el envío"))
		return
	}

	log.Info("shipment found", slog.Int64("id", id))
	render.JSON(w, r, shipment)
}
