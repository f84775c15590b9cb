package middleware

import (
	"context"
	"fmt"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// SessionReader отдаёт текущую сессию чата.
type SessionReader interface {
	Current(ctx context.Context, chatID int64) (model.Session, bool, error)
}

// DebugUserActions при включённом режиме отладки отправляет пользователю
// сообщение с его действием и состоянием сессии после обработки.
func DebugUserActions(enabled bool, sessions SessionReader) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		if !enabled {
			return next
		}
		return func(c telebot.Context) error {
			err := next(c)

			user, chat := c.Sender(), c.Chat()
			if user == nil || chat == nil {
				return err
			}
			go c.Bot().Send(user, debugMessage(c, sessions, chat.ID))
			return err
		}
	}
}

func debugMessage(c telebot.Context, sessions SessionReader, chatID int64) string {
	state := "no session"
	sess, ok, err := sessions.Current(context.Background(), chatID)
	switch {
	case err != nil:
		state = "error: " + err.Error()
	case ok:
		state = describeSession(sess)
	}
	return fmt.Sprintf("DEBUG: User: %s (ID: %d), Session: %s, Action: %s",
		c.Sender().FirstName, c.Sender().ID, state, action(c))
}

// describeSession кратко описывает сессию для отладочного сообщения.
func describeSession(sess model.Session) string {
	score, completed := sess.Tabs.Choice.Score, sess.Tabs.Choice.Completed
	if sess.Tabs.Active == quiz.TabDragDrop {
		score, completed = sess.Tabs.Match.Score, sess.Tabs.Match.Completed
	}
	desc := fmt.Sprintf("%s tab=%s index=%d score=%d completed=%t",
		sess.ShortID(), sess.Tabs.Active, sess.Index(), score, completed)
	if sess.Hand != nil {
		desc += " hand=" + sess.Hand.TermID
	}
	return desc
}
