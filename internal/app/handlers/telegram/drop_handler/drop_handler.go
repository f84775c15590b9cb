package drop_handler

import (
	"fmt"
	"strconv"

	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/app/screens"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// DropHandler обрабатывает завершение перетаскивания: взятый термин кладётся на определение.
type DropHandler struct {
	sessionService *sessionsService.SessionService
}

// NewDropHandler возвращает структуру обработчика
func NewDropHandler(sessionService *sessionsService.SessionService) *DropHandler {
	return &DropHandler{sessionService: sessionService}
}

func (h *DropHandler) Handle(c telebot.Context) error {
	if c.Callback() == nil || c.Chat() == nil {
		return nil
	}

	ref, arg, err := screens.ParseCallback(c.Callback().Data)
	if err != nil {
		return view.Reply(c, h.sessionService, model.Session{}, err)
	}
	target, err := strconv.Atoi(arg)
	if err != nil {
		return view.Reply(c, h.sessionService, model.Session{}, fmt.Errorf("%w: %q", quiz.ErrUnknownTarget, arg))
	}

	sess, err := h.sessionService.DropTerm(view.Context(c), c.Chat().ID, ref, target)
	return view.Reply(c, h.sessionService, sess, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *DropHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
