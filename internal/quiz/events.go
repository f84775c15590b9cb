package quiz

// Stage описывает, что сейчас видит пользователь.
type Stage int

const (
	StageAnswering Stage = iota // вопрос показан, ответ не выбран
	StageReviewing              // ответ выбран, показана подсказка или подтверждение
	StageMatching               // раунд сопоставления терминов
	StageCompleted              // итоговый экран
)

func (s Stage) String() string {
	switch s {
	case StageAnswering:
		return "answering"
	case StageReviewing:
		return "reviewing"
	case StageMatching:
		return "matching"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ChoiceEvent - событие викторины с выбором варианта.
type ChoiceEvent interface {
	choiceEvent()
}

// MatchEvent - событие викторины на сопоставление.
type MatchEvent interface {
	matchEvent()
}

// SelectOption выбирает вариант ответа на текущий вопрос.
type SelectOption struct {
	OptionID string
}

// GoBack возвращает к предыдущему вопросу.
type GoBack struct{}

// Drop кладёт перетаскиваемый термин в зону сброса с определением Target.
type Drop struct {
	Payload DragPayload
	Target  string
}

// ClearMatches снимает все термины с зон сброса текущего раунда.
type ClearMatches struct{}

// Continue переходит к следующему вопросу или к итогам.
type Continue struct{}

// TryAgain сбрасывает сессию в начальное состояние.
type TryAgain struct{}

func (SelectOption) choiceEvent() {}
func (GoBack) choiceEvent()       {}
func (Continue) choiceEvent()     {}
func (TryAgain) choiceEvent()     {}

func (Drop) matchEvent()         {}
func (ClearMatches) matchEvent() {}
func (Continue) matchEvent()     {}
func (TryAgain) matchEvent()     {}
