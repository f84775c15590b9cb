package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IT-Nick/quiz-bot/internal/app/screens"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// Show выводит экран сессии: по нажатию кнопки редактирует сообщение, иначе отправляет новое.
func Show(c telebot.Context, q *quiz.Quizzes, sess model.Session) error {
	screen := screens.Render(q, sess)

	if c.Callback() != nil && c.Callback().Message != nil {
		err := c.Edit(screen.Text, screen.Options())
		if err != nil && !containsNotModifiedError(err) {
			return fmt.Errorf("failed to edit quiz screen: %w", err)
		}
		return nil
	}

	if err := c.Send(screen.Text, screen.Options()); err != nil {
		return fmt.Errorf("failed to send quiz screen: %w", err)
	}
	return nil
}

// Reply обрабатывает результат действия над сессией. Ожидаемые ошибки нажатий
// (устаревшая кнопка, пустая рука, неизвестный термин) превращаются в короткое
// уведомление и перерисовку текущего экрана.
func Reply(c telebot.Context, svc *service.SessionService, sess model.Session, err error) error {
	if err == nil {
		return Show(c, svc.Quizzes(), sess)
	}

	text, ok := NoticeText(err)
	if !ok {
		return err
	}
	if respErr := c.Respond(&telebot.CallbackResponse{Text: text}); respErr != nil {
		return fmt.Errorf("failed to respond to callback: %w", respErr)
	}

	if c.Chat() == nil {
		return nil
	}
	current, err := svc.Open(ctxOf(c), c.Chat().ID)
	if err != nil {
		return err
	}
	return Show(c, svc.Quizzes(), current)
}

// NoticeText возвращает текст уведомления для ожидаемой ошибки нажатия.
func NoticeText(err error) (string, bool) {
	switch {
	case errors.Is(err, quiz.ErrStaleCallback):
		return "This screen is out of date, here is the current one.", true
	case errors.Is(err, service.ErrEmptyHand):
		return "Pick a term first.", true
	case errors.Is(err, quiz.ErrUnknownTerm), errors.Is(err, quiz.ErrUnknownTarget):
		return "That term does not belong here.", true
	default:
		return "", false
	}
}

// containsNotModifiedError проверяет, что Telegram отказался редактировать неизменившееся сообщение.
func containsNotModifiedError(err error) bool {
	return errors.Is(err, telebot.ErrSameMessageContent) ||
		strings.Contains(err.Error(), "message is not modified")
}
