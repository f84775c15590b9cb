package choice_handler

import (
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/app/screens"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// ChoiceHandler применяет нажатие кнопки к викторине с выбором варианта.
type ChoiceHandler struct {
	sessionService *sessionsService.SessionService
	event          func(arg string) quiz.ChoiceEvent
}

func newChoiceHandler(sessionService *sessionsService.SessionService, event func(arg string) quiz.ChoiceEvent) *ChoiceHandler {
	return &ChoiceHandler{sessionService: sessionService, event: event}
}

// NewSelectHandler обрабатывает выбор варианта ответа
func NewSelectHandler(sessionService *sessionsService.SessionService) *ChoiceHandler {
	return newChoiceHandler(sessionService, func(arg string) quiz.ChoiceEvent {
		return quiz.SelectOption{OptionID: arg}
	})
}

// NewNextHandler обрабатывает кнопку Continue
func NewNextHandler(sessionService *sessionsService.SessionService) *ChoiceHandler {
	return newChoiceHandler(sessionService, func(string) quiz.ChoiceEvent { return quiz.Continue{} })
}

// NewBackHandler обрабатывает кнопку Back
func NewBackHandler(sessionService *sessionsService.SessionService) *ChoiceHandler {
	return newChoiceHandler(sessionService, func(string) quiz.ChoiceEvent { return quiz.GoBack{} })
}

// NewRetryHandler обрабатывает кнопку Try Again
func NewRetryHandler(sessionService *sessionsService.SessionService) *ChoiceHandler {
	return newChoiceHandler(sessionService, func(string) quiz.ChoiceEvent { return quiz.TryAgain{} })
}

func (h *ChoiceHandler) Handle(c telebot.Context) error {
	if c.Callback() == nil || c.Chat() == nil {
		return nil
	}

	ref, arg, err := screens.ParseCallback(c.Callback().Data)
	if err != nil {
		return view.Reply(c, h.sessionService, model.Session{}, err)
	}

	sess, err := h.sessionService.Choose(view.Context(c), c.Chat().ID, ref, h.event(arg))
	return view.Reply(c, h.sessionService, sess, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *ChoiceHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
