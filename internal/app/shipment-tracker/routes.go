// Package shipmenttracker предоставляет маршруты для основного приложения.
package shipmenttracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/health"
	officelist "github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/office/list"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/shipment/addcomment"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/shipment/create"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/shipment/list"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/shipment/read"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/handlers/shipment/updatestatus"
	"github.com/magabrotheeeer/shipment-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/shipment-tracker/internal/services/auth"
	shipmentservice "github.com/magabrotheeeer/shipment-tracker/internal/services/shipment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, shipmentService *shipmentservice.ShipmentService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с проверкой токена сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.TokenMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/change-password", changepassword.New(logger, authService).ServeHTTP)
			r.Post("/shipments", create.New(logger, shipmentService).ServeHTTP)
			r.Get("/shipments/{id}", read.New(logger, shipmentService).ServeHTTP)
			r.Post("/shipments/{id}/comments", addcomment.New(logger, shipmentService).ServeHTTP)
			r.Get("/offices", officelist.New(logger, shipmentService).ServeHTTP)

			// Только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/shipments", list.New(logger, shipmentService).ServeHTTP)
				r.Patch("/shipments/{id}/status", updatestatus.New(logger, shipmentService).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
