package model

import (
	"time"

	"github.com/IT-Nick/quiz-bot/internal/quiz"
	"github.com/google/uuid"
)

// Session - состояние чата: активная вкладка, смонтированная в ней викторина
// и термин, который пользователь взял для перетаскивания.
type Session struct {
	ID        uuid.UUID // меняется при каждом монтировании и сбросе викторины
	ChatID    int64
	Tabs      quiz.Tabs
	Hand      *quiz.DragPayload
	StartedAt time.Time
	UpdatedAt time.Time
}

// ShortID - укороченный идентификатор сессии для данных inline-кнопок.
func (s Session) ShortID() string {
	return s.ID.String()[:8]
}

// Index возвращает индекс текущего вопроса активной вкладки.
func (s Session) Index() int {
	if s.Tabs.Active == quiz.TabDragDrop {
		return s.Tabs.Match.Index
	}
	return s.Tabs.Choice.Index
}

// Ref привязывает нажатие кнопки к экрану, на котором она была показана.
type Ref struct {
	Session string
	Index   int
}

// RefOf возвращает ссылку на текущий экран сессии.
func RefOf(s Session) Ref {
	return Ref{Session: s.ShortID(), Index: s.Index()}
}

// Matches сообщает, что кнопка относится к текущему экрану сессии.
func (s Session) Matches(ref Ref) bool {
	return ref.Session == s.ShortID() && ref.Index == s.Index()
}
