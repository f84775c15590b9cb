package view

import (
	"context"

	"gopkg.in/telebot.v4"
)

// ctxKey - ключ контекста запроса в хранилище telebot.Context.
const ctxKey = "ctx"

// WithContext возвращает middleware, которое кладёт в каждое обновление контекст приложения.
// При остановке приложения обработчики получают отменённый контекст.
func WithContext(ctx context.Context) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			c.Set(ctxKey, ctx)
			return next(c)
		}
	}
}

// Context возвращает контекст обновления, заданный WithContext.
func Context(c telebot.Context) context.Context {
	return ctxOf(c)
}

func ctxOf(c telebot.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}
