package pick_handler

import (
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/app/screens"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"gopkg.in/telebot.v4"
)

// PickHandler обрабатывает начало перетаскивания: пользователь берёт термин.
type PickHandler struct {
	sessionService *sessionsService.SessionService
}

// NewPickHandler возвращает структуру обработчика
func NewPickHandler(sessionService *sessionsService.SessionService) *PickHandler {
	return &PickHandler{sessionService: sessionService}
}

func (h *PickHandler) Handle(c telebot.Context) error {
	if c.Callback() == nil || c.Chat() == nil {
		return nil
	}

	ref, termID, err := screens.ParseCallback(c.Callback().Data)
	if err != nil {
		return view.Reply(c, h.sessionService, model.Session{}, err)
	}

	sess, err := h.sessionService.PickTerm(view.Context(c), c.Chat().ID, ref, termID)
	return view.Reply(c, h.sessionService, sess, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *PickHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
