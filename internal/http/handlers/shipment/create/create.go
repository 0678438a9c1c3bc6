// Package create реализует HTTP-обработчик для создания новых отправлений.
//
// Handler принимает JSON-запрос с данными получателя и отделения, валидирует их,
// извлекает идентификатор отправителя из контекста, вызывает бизнес-логику
// создания отправления и возвращает созданную запись в JSON-формате.
package create

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
	"github.com/magabrotheeeer/shipment-tracker/internal/models"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание отправлений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики отправлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания отправления.
type Service interface {
	Create(ctx context.Context, senderUID string, req models.DummyShipment) (*models.Shipment, error)
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
// @Summary Создать новое отправление
// @Description Создает отправление со статусом Pending и свежим номером отслеживания.
// @Tags Shipments
// @Accept  json
// @Produce  json
// @Param request body models.DummyShipment true "Данные нового отправления"
// @Success 201 {object} models.Shipment "Созданное отправление"
// @Failure 400 {object} response.Message "Некорректные данные"
// @Failure 401 {object} response.Message "Пользователь не авторизован"
// @Failure 500 {object} response.Message "Ошибка сервера"
// @Router /shipments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.shipment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyShipment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	senderUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || senderUID == "" {
		log.Error("sender uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("No hay token, autorización denegada"))
		return
	}

	created, err := h.service.Create(r.Context(), senderUID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("office not found", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Oficina no encontrada"))
			return
		}
		log.Error("failed to create shipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("No se pudo crear el envío"))
		return
	}

	log.Info("shipment created",
		slog.Int64("id", created.ID),
		slog.String("tracking_number", created.TrackingNumber))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, created)
}
