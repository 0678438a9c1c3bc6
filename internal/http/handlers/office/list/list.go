// Package list реализует HTTP-обработчик для получения списка отделений.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/response"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
)

// Handler управляет HTTP-запросами на получение списка отделений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики отправлений
}

// Service описывает интерфейс бизнес-логики получения отделений.
type Service interface {
	ListOffices(ctx context.Context) ([]*models.Office, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список отделений
// @Description Возвращает все отделения, доступные для приёма отправлений.
// @Tags Offices
// @Produce  json
// @Success 200 {array} models.Office "Список отделений"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /offices [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.office.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	offices, err := h.service.ListOffices(r.Context())
	if err != nil {
		log.Error("failed to list offices", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al obtener las oficinas"))
		return
	}

	log.Info("offices listed", slog.Int("count", len(offices)))
	render.JSON(w, r, offices)
}
