package middleware

import (
	"errors"
	"fmt"

	"github.com/IT-Nick/quiz-bot/internal/logger"
	"gopkg.in/telebot.v4"
)

// Recover перехватывает панику в обработчике, логирует её и возвращает как ошибку.
func Recover(log *logger.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("unknown panic: %v", r)
					}
					log.Error("recovered from panic", "error", err, "action", action(c))
				}
			}()
			return next(c)
		}
	}
}
