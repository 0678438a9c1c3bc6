// Package smtp предоставляет интерфейсы для работы с SMTP.
package smtp

import "io"

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс для SMTP транспорта. Формирование заголовков
// письма и SMTP-сеанс скрыты за единственным методом Send.
type TransportInterface interface {
	Send(to, subject, body string) error
}
