// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Ошибки всегда отдаются плоским объектом
// вида {"message": "..."}, без стека и деталей внутренних сбоев.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Message описывает структуру JSON‑ответа с единственным текстовым полем.
// Используется и для ошибок, и для подтверждений без данных.
type Message struct {
	Message string `json:"message"`
}

// Error возвращает Message с переданным текстом ошибки.
func Error(msg string) Message {
	return Message{
		Message: msg,
	}
}

// OK возвращает Message с переданным текстом подтверждения.
func OK(msg string) Message {
	return Message{
		Message: msg,
	}
}

// ValidationError формирует Message на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Message {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Message{
		Message: strings.Join(errsMsgs, ", "),
	}
}
