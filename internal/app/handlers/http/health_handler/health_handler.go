package health_handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// SessionCounter отдаёт число открытых сессий.
type SessionCounter interface {
	Count() int
}

// Response - тело ответа GET /healthz.
type Response struct {
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	Uptime   string `json:"uptime"`
	Sessions int    `json:"sessions"`
}

// HealthHandler структура для обработчика проверки состояния
type HealthHandler struct {
	sessions  SessionCounter
	mode      string
	startedAt time.Time
}

// NewHealthHandler создает новый экземпляр обработчика
func NewHealthHandler(sessions SessionCounter, mode string, startedAt time.Time) *HealthHandler {
	return &HealthHandler{
		sessions:  sessions,
		mode:      mode,
		startedAt: startedAt,
	}
}

// ServeHTTP метод для обработки запроса
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := Response{
		Status:   "ok",
		Mode:     h.mode,
		Uptime:   time.Since(h.startedAt).Truncate(time.Second).String(),
		Sessions: h.sessions.Count(),
	}

	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
