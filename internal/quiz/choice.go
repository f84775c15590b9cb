package quiz

// ChoiceState - состояние сессии викторины с выбором варианта.
// Значение неизменяемо: Reduce всегда возвращает новую копию.
type ChoiceState struct {
	Index     int      // индекс текущего вопроса
	Selected  string   // выбранный вариант, пустая строка если выбора нет
	ShowHint  bool     // показывать подсказку к текущему вопросу
	Answers   []string // записанный ответ по каждому вопросу
	Score     int
	Completed bool

	awarded []bool // вопросы, за которые очки уже начислены
}

// ChoiceResults - итоги викторины с выбором варианта.
type ChoiceResults struct {
	Score   int
	Correct int
	Total   int
}

// ChoiceQuiz - линейная последовательность вопросов с выбором варианта.
type ChoiceQuiz struct {
	questions []Question
}

// NewChoiceQuiz создаёт викторину по списку вопросов.
func NewChoiceQuiz(questions []Question) *ChoiceQuiz {
	return &ChoiceQuiz{questions: questions}
}

func (q *ChoiceQuiz) Len() int {
	return len(q.questions)
}

func (q *ChoiceQuiz) Question(i int) Question {
	return q.questions[i]
}

// Goal - максимально возможное количество очков.
func (q *ChoiceQuiz) Goal() int {
	return PointsPerQuestion * len(q.questions)
}

// Initial возвращает состояние только что открытой викторины.
func (q *ChoiceQuiz) Initial() ChoiceState {
	return ChoiceState{
		Answers: make([]string, len(q.questions)),
		awarded: make([]bool, len(q.questions)),
	}
}

// Reduce применяет событие к состоянию и возвращает следующее состояние.
// Недопустимые в текущем состоянии события ничего не меняют.
func (q *ChoiceQuiz) Reduce(s ChoiceState, ev ChoiceEvent) ChoiceState {
	switch e := ev.(type) {
	case SelectOption:
		return q.selectOption(s, e.OptionID)
	case Continue:
		return q.advance(s)
	case GoBack:
		return q.goBack(s)
	case TryAgain:
		return q.Initial()
	}
	return s
}

func (q *ChoiceQuiz) selectOption(s ChoiceState, optionID string) ChoiceState {
	if s.Completed {
		return s
	}
	question := q.questions[s.Index]
	if _, ok := question.Option(optionID); !ok {
		return s
	}
	s.Selected = optionID
	s.ShowHint = optionID != question.CorrectAnswer
	return s
}

func (q *ChoiceQuiz) advance(s ChoiceState) ChoiceState {
	if s.Completed || s.Selected == "" {
		return s
	}

	next := s.clone(len(q.questions))
	next.Answers[s.Index] = s.Selected
	// Очки начисляются один раз за вопрос и только если итоговый ответ верен.
	if s.Selected == q.questions[s.Index].CorrectAnswer && !next.awarded[s.Index] {
		next.awarded[s.Index] = true
		next.Score += PointsPerQuestion
	}

	if s.Index == len(q.questions)-1 {
		next.Completed = true
		return next
	}
	next.Index++
	next.Selected = ""
	next.ShowHint = false
	return next
}

func (q *ChoiceQuiz) goBack(s ChoiceState) ChoiceState {
	if s.Completed || s.Index == 0 {
		return s
	}
	s.Index--
	if s.Index < len(s.Answers) {
		s.Selected = s.Answers[s.Index]
	}
	s.ShowHint = false
	return s
}

// Stage возвращает текущую стадию сессии.
func (q *ChoiceQuiz) Stage(s ChoiceState) Stage {
	switch {
	case s.Completed:
		return StageCompleted
	case s.Selected != "":
		return StageReviewing
	default:
		return StageAnswering
	}
}

// IsCorrect сообщает, верен ли выбранный на текущем вопросе вариант.
func (q *ChoiceQuiz) IsCorrect(s ChoiceState) bool {
	return s.Selected != "" && s.Selected == q.questions[s.Index].CorrectAnswer
}

// CanContinue сообщает, можно ли перейти дальше.
func (q *ChoiceQuiz) CanContinue(s ChoiceState) bool {
	return !s.Completed && s.Selected != ""
}

// CanGoBack сообщает, можно ли вернуться к предыдущему вопросу.
func (q *ChoiceQuiz) CanGoBack(s ChoiceState) bool {
	return !s.Completed && s.Index > 0
}

// Progress возвращает полосу прогресса по вопросам.
func (q *ChoiceQuiz) Progress(s ChoiceState) []Mark {
	return progress(len(q.questions), s.Index)
}

// Results пересчитывает количество верных ответов по истории ответов,
// а не по накопленному счёту.
func (q *ChoiceQuiz) Results(s ChoiceState) ChoiceResults {
	correct := 0
	for i, answer := range s.Answers {
		if i < len(q.questions) && answer != "" && answer == q.questions[i].CorrectAnswer {
			correct++
		}
	}
	return ChoiceResults{
		Score:   s.Score,
		Correct: correct,
		Total:   len(q.questions),
	}
}

// clone копирует состояние вместе со срезами, приводя их к длине n.
func (s ChoiceState) clone(n int) ChoiceState {
	c := s
	c.Answers = make([]string, n)
	copy(c.Answers, s.Answers)
	c.awarded = make([]bool, n)
	copy(c.awarded, s.awarded)
	return c
}
