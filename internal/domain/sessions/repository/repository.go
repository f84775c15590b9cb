package repository

import (
	"context"
	"sync"
	"time"

	"github.com/IT-Nick/quiz-bot/internal/domain/model"
)

// SessionRepository хранит сессии чатов в памяти процесса.
// Состояние не переживает перезапуск бота.
type SessionRepository struct {
	data map[int64]model.Session
	mu   sync.RWMutex
}

// NewSessionRepository создает новый экземпляр SessionRepository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{data: make(map[int64]model.Session)}
}

// Get возвращает сессию чата.
func (r *SessionRepository) Get(ctx context.Context, chatID int64) (model.Session, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[chatID]
	return s, ok, nil
}

// Update применяет fn к сессии чата под блокировкой, так что события одного чата
// обрабатываются строго по очереди. Если fn вернула ошибку, изменения не сохраняются.
func (r *SessionRepository) Update(ctx context.Context, chatID int64, fn func(s *model.Session, exists bool) error) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.data[chatID]
	if err := fn(&s, ok); err != nil {
		return model.Session{}, err
	}
	r.data[chatID] = s
	return s, nil
}

// Delete удаляет сессию чата.
func (r *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, chatID)
	return nil
}

// DeleteIdle удаляет сессии, не менявшиеся с момента before, и возвращает их количество.
func (r *SessionRepository) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for chatID, s := range r.data {
		if s.UpdatedAt.Before(before) {
			delete(r.data, chatID)
			removed++
		}
	}
	return removed, nil
}

// Count возвращает количество открытых сессий.
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
