package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shipment-tracker/internal/config"
	"github.com/magabrotheeeer/shipment-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/shipment-tracker/internal/rabbitmq"
	notifierservice "github.com/magabrotheeeer/shipment-tracker/internal/services/notifier"
)

type App struct {
	conn            *amqp.Connection
	ch              *amqp.Channel
	notifierService *notifierservice.NotifierService
	logger          *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	notifierService := notifierservice.NewNotifierService(logger, newTransport)

	return &App{
		conn:            conn,
		ch:              ch,
		notifierService: notifierService,
		logger:          logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.StatusQueue, a.notifierService.SendStatusChanged)
	if err != nil {
		a.logger.Error("failed to start status queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
