package middleware

import (
	"errors"
	"strings"
	"testing"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/logger"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/telebot.v4"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func newTestContext(t *testing.T) telebot.Context {
	t.Helper()
	bot, err := telebot.NewBot(telebot.Settings{Offline: true})
	if err != nil {
		t.Fatalf("Не удалось создать бота: %v", err)
	}
	return bot.NewContext(telebot.Update{
		ID: 7,
		Message: &telebot.Message{
			Text:   "/start",
			Sender: &telebot.User{ID: 42, FirstName: "Test"},
			Chat:   &telebot.Chat{ID: 42},
		},
	})
}

// TestRecover проверяет, что паника превращается в ошибку и логируется
func TestRecover(t *testing.T) {
	log, logs := newObservedLogger()
	handler := Recover(log)(func(c telebot.Context) error {
		panic("boom")
	})

	err := handler(newTestContext(t))
	if err == nil || err.Error() != "boom" {
		t.Fatalf("Ожидалась ошибка boom, получено %v", err)
	}
	if logs.FilterMessage("recovered from panic").Len() != 1 {
		t.Errorf("Ожидалась запись о панике в логе")
	}
}

// TestLogger_Error проверяет логирование ошибки обработчика
func TestLogger_Error(t *testing.T) {
	log, logs := newObservedLogger()
	want := errors.New("handler error")
	handler := Logger(log, false)(func(c telebot.Context) error {
		return want
	})

	if err := handler(newTestContext(t)); !errors.Is(err, want) {
		t.Fatalf("Ошибка обработчика должна возвращаться без изменений, получено %v", err)
	}
	entries := logs.FilterMessage("handler failed").All()
	if len(entries) != 1 {
		t.Fatalf("Ожидалась одна запись об ошибке, получено %d", len(entries))
	}
	if got := entries[0].ContextMap()["action"]; got != "message: /start" {
		t.Errorf("Неверное описание действия: %v", got)
	}
}

// TestLogger_Dump проверяет вывод обновления целиком в режиме отладки
func TestLogger_Dump(t *testing.T) {
	log, logs := newObservedLogger()
	handler := Logger(log, true)(func(c telebot.Context) error { return nil })

	if err := handler(newTestContext(t)); err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	dumps := logs.FilterMessage("telegram update").All()
	if len(dumps) != 1 || !strings.Contains(dumps[0].ContextMap()["update"].(string), "/start") {
		t.Errorf("Ожидался дамп обновления")
	}
}

// TestDebugUserActions_Disabled проверяет, что выключенный режим не оборачивает обработчик
func TestDebugUserActions_Disabled(t *testing.T) {
	called := false
	handler := DebugUserActions(false, nil)(func(c telebot.Context) error {
		called = true
		return nil
	})
	if err := handler(newTestContext(t)); err != nil || !called {
		t.Errorf("Обработчик должен вызываться напрямую: called=%t err=%v", called, err)
	}
}

// TestDescribeSession проверяет краткое описание сессии
func TestDescribeSession(t *testing.T) {
	sess := model.Session{
		ID: uuid.MustParse("12345678-0000-0000-0000-000000000000"),
		Tabs: quiz.Tabs{
			Active: quiz.TabDragDrop,
			Match:  quiz.MatchState{Index: 2, Score: 75},
		},
		Hand: &quiz.DragPayload{TermID: "t1"},
	}
	got := describeSession(sess)
	want := "12345678 tab=drag-and-drop index=2 score=75 completed=false hand=t1"
	if got != want {
		t.Errorf("Ожидалось %q, получено %q", want, got)
	}
}
