package quiz

import "fmt"

// MatchState - состояние сессии викторины на сопоставление.
type MatchState struct {
	Index     int               // индекс текущего раунда
	Placed    map[string]string // определение -> идентификатор термина
	Score     int
	Completed bool
}

// MatchResults - итоги викторины на сопоставление.
type MatchResults struct {
	Score    int
	MaxScore int
}

// MatchQuiz - последовательность раундов сопоставления терминов с определениями.
// Возврат к предыдущему раунду не предусмотрен.
type MatchQuiz struct {
	rounds []Round
}

// NewMatchQuiz создаёт викторину по списку раундов.
func NewMatchQuiz(rounds []Round) *MatchQuiz {
	return &MatchQuiz{rounds: rounds}
}

func (q *MatchQuiz) Len() int {
	return len(q.rounds)
}

func (q *MatchQuiz) Round(i int) Round {
	return q.rounds[i]
}

// MaxScore - максимально возможное количество очков за все раунды.
func (q *MatchQuiz) MaxScore() int {
	total := 0
	for _, r := range q.rounds {
		total += len(r.Terms) * PointsPerMatch
	}
	return total
}

// Initial возвращает состояние только что открытой викторины.
func (q *MatchQuiz) Initial() MatchState {
	return MatchState{Placed: map[string]string{}}
}

// CheckDrop проверяет событие сброса на границе ввода.
func (q *MatchQuiz) CheckDrop(s MatchState, d Drop) error {
	if s.Completed {
		return ErrStaleCallback
	}
	round := q.rounds[s.Index]
	if _, err := round.Resolve(d.Payload); err != nil {
		return err
	}
	if !round.HasTarget(d.Target) {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, d.Target)
	}
	return nil
}

// Reduce применяет событие к состоянию и возвращает следующее состояние.
// Недопустимые в текущем состоянии события ничего не меняют.
func (q *MatchQuiz) Reduce(s MatchState, ev MatchEvent) MatchState {
	switch e := ev.(type) {
	case Drop:
		return q.drop(s, e)
	case ClearMatches:
		if s.Completed {
			return s
		}
		s.Placed = map[string]string{}
		return s
	case Continue:
		return q.advance(s)
	case TryAgain:
		return q.Initial()
	}
	return s
}

func (q *MatchQuiz) drop(s MatchState, d Drop) MatchState {
	if q.CheckDrop(s, d) != nil {
		return s
	}

	placed := make(map[string]string, len(s.Placed)+1)
	for target, termID := range s.Placed {
		// Термин может лежать только в одной зоне: повторный сброс переносит его.
		if termID == d.Payload.TermID {
			continue
		}
		placed[target] = termID
	}
	// Последний сброс в зону вытесняет лежавший там термин.
	placed[d.Target] = d.Payload.TermID

	s.Placed = placed
	return s
}

func (q *MatchQuiz) advance(s MatchState) MatchState {
	if !q.CanContinue(s) {
		return s
	}

	s.Score += q.correctCount(s) * PointsPerMatch
	s.Placed = map[string]string{}
	if s.Index == len(q.rounds)-1 {
		s.Completed = true
		return s
	}
	s.Index++
	return s
}

func (q *MatchQuiz) correctCount(s MatchState) int {
	count := 0
	for target := range s.Placed {
		if q.IsCorrectAt(s, target) {
			count++
		}
	}
	return count
}

// Stage возвращает текущую стадию сессии.
func (q *MatchQuiz) Stage(s MatchState) Stage {
	if s.Completed {
		return StageCompleted
	}
	return StageMatching
}

// DroppedAt возвращает термин, лежащий в зоне сброса.
func (q *MatchQuiz) DroppedAt(s MatchState, target string) (Term, bool) {
	if s.Completed {
		return Term{}, false
	}
	termID, ok := s.Placed[target]
	if !ok {
		return Term{}, false
	}
	return q.rounds[s.Index].Term(termID)
}

// IsCorrectAt сообщает, что в зоне лежит термин с совпадающим определением.
func (q *MatchQuiz) IsCorrectAt(s MatchState, target string) bool {
	dropped, ok := q.DroppedAt(s, target)
	if !ok {
		return false
	}
	for _, t := range q.rounds[s.Index].Terms {
		if t.Definition == target {
			return t.ID == dropped.ID
		}
	}
	return false
}

// IsPlaced сообщает, лежит ли термин в какой-либо зоне. Такой термин
// остаётся в списке, но помечается как уже использованный.
func (q *MatchQuiz) IsPlaced(s MatchState, termID string) bool {
	for _, id := range s.Placed {
		if id == termID {
			return true
		}
	}
	return false
}

// CanContinue сообщает, что во всех зонах раунда лежит термин.
func (q *MatchQuiz) CanContinue(s MatchState) bool {
	if s.Completed {
		return false
	}
	for _, target := range q.rounds[s.Index].Targets() {
		if _, ok := s.Placed[target]; !ok {
			return false
		}
	}
	return true
}

// Progress возвращает полосу прогресса по раундам.
func (q *MatchQuiz) Progress(s MatchState) []Mark {
	return progress(len(q.rounds), s.Index)
}

// Results возвращает итоговый счёт и максимально возможный.
func (q *MatchQuiz) Results(s MatchState) MatchResults {
	return MatchResults{Score: s.Score, MaxScore: q.MaxScore()}
}
