package tab_handler

import (
	"fmt"

	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// TabHandler переключает вкладку викторины.
// Вкладка берётся из данных кнопки либо фиксируется для команды (/quiz, /match).
type TabHandler struct {
	sessionService *sessionsService.SessionService
	fixed          quiz.Tab
}

// NewTabHandler возвращает обработчик кнопок вкладок
func NewTabHandler(sessionService *sessionsService.SessionService) *TabHandler {
	return &TabHandler{sessionService: sessionService}
}

// NewTabCommandHandler возвращает обработчик команды, открывающей вкладку tab
func NewTabCommandHandler(sessionService *sessionsService.SessionService, tab quiz.Tab) *TabHandler {
	return &TabHandler{sessionService: sessionService, fixed: tab}
}

func (h *TabHandler) Handle(c telebot.Context) error {
	if c.Chat() == nil {
		return nil
	}

	tab := h.fixed
	if tab == "" {
		if c.Callback() == nil {
			return nil
		}
		parsed, err := quiz.ParseTab(c.Callback().Data)
		if err != nil {
			return view.Reply(c, h.sessionService, model.Session{}, err)
		}
		tab = parsed
	}

	sess, err := h.sessionService.SwitchTab(view.Context(c), c.Chat().ID, tab)
	if err != nil {
		return fmt.Errorf("failed to switch tab: %w", err)
	}
	return view.Show(c, h.sessionService.Quizzes(), sess)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TabHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
