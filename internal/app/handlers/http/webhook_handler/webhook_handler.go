package webhook_handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/logger"
	"gopkg.in/telebot.v4"
)

// DefaultQueueTimeout - сколько запрос ждёт места в очереди обновлений бота.
const DefaultQueueTimeout = 5 * time.Second

// WebhookHandler принимает обновления Telegram и кладёт их в очередь бота.
// Очередь (bot.Updates) существует с момента создания бота, поэтому запросы,
// пришедшие до bot.Start, дожидаются обработки, а не теряются.
type WebhookHandler struct {
	updates chan<- telebot.Update
	timeout time.Duration
	log     *logger.Logger
}

// NewWebhookHandler создает новый экземпляр обработчика
func NewWebhookHandler(updates chan<- telebot.Update, timeout time.Duration, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		updates: updates,
		timeout: timeout,
		log:     log,
	}
}

// ServeHTTP метод для обработки запроса
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update telebot.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warn("invalid webhook update", "error", err)
		http.Error(w, "Invalid update", http.StatusBadRequest)
		return
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case h.updates <- update:
		w.WriteHeader(http.StatusOK)
	case <-r.Context().Done():
		h.log.Warn("webhook request cancelled", "update_id", update.ID)
	case <-timer.C:
		h.log.Warn("update queue is full", "update_id", update.ID)
		http.Error(w, "Update queue is full", http.StatusServiceUnavailable)
	}
}
