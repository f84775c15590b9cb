package start_handler

import (
	"fmt"

	"github.com/IT-Nick/quiz-bot/internal/app/handlers/telegram/view"
	sessionsService "github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"gopkg.in/telebot.v4"
)

const welcomeMessage = "👋 Hi, %s! Pick a tab below: answer multiple choice questions " +
	"or match terms to their definitions. Tap a term to pick it up, then tap the number " +
	"of the definition to drop it there."

// StartHandler структура для обработки команды /start
type StartHandler struct {
	sessionService *sessionsService.SessionService
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(sessionService *sessionsService.SessionService) *StartHandler {
	return &StartHandler{
		sessionService: sessionService,
	}
}

// Handle приветствует пользователя и показывает текущую викторину чата
func (h *StartHandler) Handle(c telebot.Context) error {
	if c.Chat() == nil {
		return nil
	}

	sess, err := h.sessionService.Open(view.Context(c), c.Chat().ID)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	name := "there"
	if c.Sender() != nil && c.Sender().FirstName != "" {
		name = c.Sender().FirstName
	}
	if err := c.Send(fmt.Sprintf(welcomeMessage, name)); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	return view.Show(c, h.sessionService.Quizzes(), sess)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
