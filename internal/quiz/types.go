package quiz

import "errors"

// Очки за вопросы. Значения зафиксированы и не настраиваются.
const (
	PointsPerQuestion = 30 // за верно отвеченный вопрос с выбором варианта
	PointsPerMatch    = 25 // за каждое верное сопоставление термина
)

var (
	// ErrUnknownTerm возвращается, если перетаскиваемый термин не принадлежит текущему раунду.
	ErrUnknownTerm = errors.New("quiz: unknown term")
	// ErrUnknownTarget возвращается, если зона сброса не соответствует ни одному определению раунда.
	ErrUnknownTarget = errors.New("quiz: unknown drop target")
	// ErrStaleCallback возвращается, если нажатая кнопка относится к устаревшему экрану.
	ErrStaleCallback = errors.New("quiz: stale callback")
)

// Option представляет вариант ответа на вопрос.
type Option struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Question представляет вопрос с выбором одного варианта.
type Question struct {
	ID            int      `yaml:"id"`
	Text          string   `yaml:"text"`
	Options       []Option `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Hint          string   `yaml:"hint"`
}

// Option возвращает вариант по идентификатору.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Term представляет перетаскиваемый термин и его определение.
type Term struct {
	ID         string `yaml:"id"`
	Text       string `yaml:"text"`
	Definition string `yaml:"definition"`
}

// Round представляет один вопрос на сопоставление терминов с определениями.
// Каждое определение раунда является отдельной зоной сброса.
type Round struct {
	ID    int    `yaml:"id"`
	Title string `yaml:"title"`
	Terms []Term `yaml:"terms"`
}

// Term возвращает термин раунда по идентификатору.
func (r Round) Term(id string) (Term, bool) {
	for _, t := range r.Terms {
		if t.ID == id {
			return t, true
		}
	}
	return Term{}, false
}

// Targets возвращает определения раунда в порядке их объявления.
func (r Round) Targets() []string {
	targets := make([]string, 0, len(r.Terms))
	for _, t := range r.Terms {
		targets = append(targets, t.Definition)
	}
	return targets
}

// Mark описывает положение вопроса относительно текущего в полосе прогресса.
type Mark int

const (
	MarkUpcoming Mark = iota
	MarkCurrent
	MarkDone
)

// progress строит полосу прогресса для n вопросов при текущем индексе current.
func progress(n, current int) []Mark {
	marks := make([]Mark, n)
	for i := range marks {
		switch {
		case i == current:
			marks[i] = MarkCurrent
		case i < current:
			marks[i] = MarkDone
		default:
			marks[i] = MarkUpcoming
		}
	}
	return marks
}
