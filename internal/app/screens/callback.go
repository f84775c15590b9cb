package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
)

// callbackData собирает данные кнопки: короткий id сессии, индекс вопроса и аргумент.
func callbackData(ref model.Ref, arg string) []string {
	return []string{ref.Session, strconv.Itoa(ref.Index), arg}
}

// ParseCallback разбирает данные кнопки экрана викторины.
func ParseCallback(data string) (model.Ref, string, error) {
	// Очищаем данные от нестандартных символов
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")

	parts := strings.SplitN(cleaned, "|", 3)
	if len(parts) != 3 || parts[0] == "" {
		return model.Ref{}, "", fmt.Errorf("%w: invalid callback data %q", quiz.ErrStaleCallback, data)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return model.Ref{}, "", fmt.Errorf("%w: invalid question index %q", quiz.ErrStaleCallback, parts[1])
	}
	return model.Ref{Session: parts[0], Index: index}, parts[2], nil
}
