package quiz

import "fmt"

// Tab - режим викторины, выбираемый переключателем вкладок.
type Tab string

const (
	TabMultiChoice Tab = "multi-choice"
	TabDragDrop    Tab = "drag-and-drop"
)

// AllTabs перечисляет вкладки в порядке отображения.
var AllTabs = []Tab{TabMultiChoice, TabDragDrop}

// Label возвращает подпись вкладки.
func (t Tab) Label() string {
	switch t {
	case TabMultiChoice:
		return "Multi Choice Questions"
	case TabDragDrop:
		return "Drag and Drop Questions"
	default:
		return string(t)
	}
}

// ParseTab разбирает идентификатор вкладки из данных кнопки.
func ParseTab(s string) (Tab, error) {
	for _, t := range AllTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab %q", ErrStaleCallback, s)
}

// Tabs - состояние контейнера: активная вкладка и единственная смонтированная в ней сессия.
type Tabs struct {
	Active Tab
	Choice ChoiceState
	Match  MatchState
}

// Quizzes объединяет обе викторины, построенные по одному каталогу.
type Quizzes struct {
	Choice *ChoiceQuiz
	Match  *MatchQuiz
}

// NewQuizzes строит обе викторины по каталогу.
func NewQuizzes(c *Catalog) *Quizzes {
	return &Quizzes{
		Choice: NewChoiceQuiz(c.Questions),
		Match:  NewMatchQuiz(c.Rounds),
	}
}

// Mount открывает вкладку с чистой сессией.
func (q *Quizzes) Mount(tab Tab) Tabs {
	t := Tabs{Active: tab}
	switch tab {
	case TabDragDrop:
		t.Match = q.Match.Initial()
	default:
		t.Active = TabMultiChoice
		t.Choice = q.Choice.Initial()
	}
	return t
}

// Switch переключает вкладку. Сессия прежней вкладки при этом отбрасывается,
// повторный выбор активной вкладки сессию сохраняет.
func (q *Quizzes) Switch(t Tabs, tab Tab) (Tabs, bool) {
	if t.Active == tab {
		return t, false
	}
	return q.Mount(tab), true
}
