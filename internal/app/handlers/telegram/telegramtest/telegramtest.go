// Package telegramtest поднимает поддельный Bot API для тестов обработчиков.
package telegramtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
	"github.com/IT-Nick/quiz-bot/internal/domain/sessions/repository"
	"github.com/IT-Nick/quiz-bot/internal/domain/sessions/service"
	"github.com/IT-Nick/quiz-bot/internal/logger"
	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"gopkg.in/telebot.v4"
)

// ChatID - чат, от имени которого приходят тестовые обновления.
const ChatID int64 = 1001

// Call - один запрос бота к Bot API.
type Call struct {
	Method string
	Params map[string]interface{}
}

// Text возвращает параметр text запроса.
func (c Call) Text() string {
	s, _ := c.Params["text"].(string)
	return s
}

// API записывает запросы бота и отвечает как Telegram.
type API struct {
	server *httptest.Server
	mu     sync.Mutex
	calls  []Call
}

// NewBot создаёт бота без сети, все запросы которого уходят в поддельный API.
func NewBot(t *testing.T) (*telebot.Bot, *API) {
	t.Helper()
	api := &API{}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	bot, err := telebot.NewBot(telebot.Settings{
		Token:   "test",
		URL:     api.server.URL,
		Offline: true,
	})
	if err != nil {
		t.Fatalf("Не удалось создать бота: %v", err)
	}
	return bot, api
}

func (a *API) serve(w http.ResponseWriter, r *http.Request) {
	params := map[string]interface{}{}
	_ = json.NewDecoder(r.Body).Decode(&params)
	method := path.Base(r.URL.Path)

	a.mu.Lock()
	a.calls = append(a.calls, Call{Method: method, Params: params})
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if method == "answerCallbackQuery" {
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
		return
	}
	_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":10,"date":0,"chat":{"id":`+
		strconv.FormatInt(ChatID, 10)+`,"type":"private"},"text":"ok"}}`)
}

// Calls возвращает копию записанных запросов.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

// Last возвращает последний запрос с методом method.
func (a *API) Last(method string) (Call, bool) {
	calls := a.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Count возвращает число запросов с методом method.
func (a *API) Count(method string) int {
	n := 0
	for _, c := range a.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Callback создаёт контекст нажатия inline-кнопки под сообщением бота.
// data передаётся без префикса unique, как его видит зарегистрированный обработчик.
func Callback(bot *telebot.Bot, data string) telebot.Context {
	return bot.NewContext(telebot.Update{
		ID: 1,
		Callback: &telebot.Callback{
			ID:      "cb-1",
			Sender:  &telebot.User{ID: ChatID, FirstName: "Test"},
			Message: &telebot.Message{ID: 10, Chat: &telebot.Chat{ID: ChatID}},
			Data:    data,
		},
	})
}

// Message создаёт контекст текстового сообщения пользователя.
func Message(bot *telebot.Bot, text string) telebot.Context {
	return bot.NewContext(telebot.Update{
		ID: 1,
		Message: &telebot.Message{
			ID:     5,
			Text:   text,
			Sender: &telebot.User{ID: ChatID, FirstName: "Test"},
			Chat:   &telebot.Chat{ID: ChatID},
		},
	})
}

// Data собирает данные кнопки экрана ref с аргументом arg.
func Data(ref model.Ref, arg string) string {
	return ref.Session + "|" + strconv.Itoa(ref.Index) + "|" + arg
}

// NewSessionService создаёт сервис сессий поверх встроенного каталога.
func NewSessionService(t *testing.T) (*service.SessionService, *repository.SessionRepository) {
	t.Helper()
	catalog, err := quiz.DefaultCatalog()
	if err != nil {
		t.Fatalf("Не удалось загрузить каталог: %v", err)
	}
	repo := repository.NewSessionRepository()
	return service.NewSessionService(repo, quiz.NewQuizzes(catalog), logger.Nop()), repo
}
