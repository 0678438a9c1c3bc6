// Package shipmenttracker собирает основное HTTP-приложение: хранилище,
// миграции, кэш, брокер сообщений, сервисы и маршруты.
package shipmenttracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shipment-tracker/internal/cache"
	"github.com/magabrotheeeer/shipment-tracker/internal/config"
	jwtlib "github.com/magabrotheeeer/shipment-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/shipment-tracker/internal/migrations"
	"github.com/magabrotheeeer/shipment-tracker/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/shipment-tracker/internal/services/auth"
	shipmentservice "github.com/magabrotheeeer/shipment-tracker/internal/services/shipment"
	"github.com/magabrotheeeer/shipment-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер необязателен: без него смена статуса просто не публикует событие.
	var publisher shipmentservice.StatusPublisher
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, status events disabled", sl.Err(err))
		conn = nil
	}
	var ch *amqp.Channel
	if conn != nil {
		ch, err = rabbitmq.SetupChannel(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		publisher = rabbitmq.NewStatusNotifier(ch)
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	shipmentService := shipmentservice.NewShipmentService(db, cacheRedis, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, shipmentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			a.ch.Close()
		}
		if a.conn != nil {
			a.conn.Close()
		}
		a.db.DB.Close()
		return err
	}
}
