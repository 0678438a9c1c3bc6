// Package tracking генерирует номера отслеживания для отправлений.
//
// Номер имеет вид "TN" плюс девять случайных символов в кодировке base-36
// в верхнем регистре. Проверка на коллизии не выполняется: уникальность
// гарантирует только уникальный индекс в хранилище, вставка с совпавшим
// номером завершится ошибкой.
package tracking

import (
	"math/rand/v2"
	"strings"
)

const (
	prefix  = "TN"
	charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	length  = 9
)

// NewNumber возвращает новый номер отслеживания формата TN[A-Z0-9]{9}.
func NewNumber() string {
	var b strings.Builder
	b.Grow(len(prefix) + length)
	b.WriteString(prefix)
	for range length {
		b.WriteByte(charset[rand.IntN(len(charset))])
	}
	return b.String()
}
