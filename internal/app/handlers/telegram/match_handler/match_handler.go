package match_handler

import (
	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/app/screens"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// MatchHandler обрабатывает кнопки викторины на сопоставление: сброс, Continue и Try Again.
type MatchHandler struct {
	sessionService *sessionsService.SessionService
	event          quiz.MatchEvent
}

// NewResetHandler очищает сопоставления текущего раунда
func NewResetHandler(sessionService *sessionsService.SessionService) *MatchHandler {
	return &MatchHandler{sessionService: sessionService, event: quiz.ClearMatches{}}
}

// NewNextHandler переходит к следующему раунду
func NewNextHandler(sessionService *sessionsService.SessionService) *MatchHandler {
	return &MatchHandler{sessionService: sessionService, event: quiz.Continue{}}
}

// NewRetryHandler начинает викторину заново
func NewRetryHandler(sessionService *sessionsService.SessionService) *MatchHandler {
	return &MatchHandler{sessionService: sessionService, event: quiz.TryAgain{}}
}

func (h *MatchHandler) Handle(c telebot.Context) error {
	if c.Callback() == nil || c.Chat() == nil {
		return nil
	}

	ref, _, err := screens.ParseCallback(c.Callback().Data)
	if err != nil {
		return view.Reply(c, h.sessionService, model.Session{}, err)
	}

	sess, err := h.sessionService.Match(view.Context(c), c.Chat().ID, ref, h.event)
	return view.Reply(c, h.sessionService, sess, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *MatchHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
