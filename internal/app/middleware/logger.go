package middleware

import (
	"encoding/json"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/logger"
	"gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое логирует входящие обновления и ошибки обработчиков.
// При dump=true обновление целиком выводится в JSON на уровне debug.
func Logger(log *logger.Logger, dump bool) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if dump {
				data, _ := json.MarshalIndent(c.Update(), "", "  ")
				log.Debug("telegram update", "update", string(data))
			}

			start := time.Now()
			err := next(c)

			fields := []interface{}{
				"update_id", c.Update().ID,
				"action", action(c),
				"duration", time.Since(start),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, "user_id", sender.ID)
			}
			if err != nil {
				log.Error("handler failed", append(fields, "error", err)...)
				return err
			}
			log.Debug("update handled", fields...)
			return nil
		}
	}
}

// action описывает действие пользователя в обновлении.
func action(c telebot.Context) string {
	if cb := c.Callback(); cb != nil {
		return "callback: " + cb.Unique + "|" + cb.Data
	}
	if msg := c.Message(); msg != nil {
		return "message: " + msg.Text
	}
	return "unknown"
}
