// Package list реализует HTTP-обработчик для получения списка отправлений
// с поддержкой пагинации и текстового поиска.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
	maxLimit      = 100
)

// Handler управляет HTTP-запросами на получение списка отправлений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики отправлений
}

// Service описывает интерфейс бизнес-логики получения списка отправлений.
type Service interface {
	ListAll(ctx context.Context, limit, offset int, search string) ([]*models.Shipment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список отправлений
// @Description Возвращает отправления, отсортированные по дате создания (новые первыми).
// @Tags Shipments
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Param search query string false "Поиск по номеру, получателю, адресу или статусу"
// @Success 200 {array} models.Shipment "Список отправлений"
// @Failure 403 {object} response.Message "Недостаточно прав"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /shipments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shipment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := defaultOffset
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	search := r.URL.Query().Get("search")

	shipments, err := h.service.ListAll(r.Context(), limit, offset, search)
	if err != nil {
		log.Error("failed to list shipments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al obtener los envíos"))
		return
	}

	log.Info("shipments listed", slog.Int("count", len(shipments)))
	render.JSON(w, r, shipments)
}
