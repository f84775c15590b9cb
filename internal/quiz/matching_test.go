package quiz

import (
	"errors"
	"testing"
)

// newTestMatchQuiz создаёт четыре одинаковых раунда по четыре термина.
func newTestMatchQuiz() *MatchQuiz {
	terms := []Term{
		{ID: "noun", Text: "Noun", Definition: "A person, place, thing, or idea"},
		{ID: "verb", Text: "Verb", Definition: "An action or state of being"},
		{ID: "adjective", Text: "Adjective", Definition: "A word that describes a noun"},
		{ID: "adverb", Text: "Adverb", Definition: "A word that modifies a verb or adjective"},
	}
	var rounds []Round
	for i := 1; i <= 4; i++ {
		rounds = append(rounds, Round{ID: i, Title: "Раунд", Terms: terms})
	}
	return NewMatchQuiz(rounds)
}

func dropTerm(q *MatchQuiz, s MatchState, termID, target string) MatchState {
	term, _ := q.Round(s.Index).Term(termID)
	return q.Reduce(s, Drop{Payload: NewDragPayload(term), Target: target})
}

// placeAll раскладывает термины так, что ровно correct из них лежат на своих местах.
func placeAll(q *MatchQuiz, s MatchState, correct int) MatchState {
	terms := q.Round(s.Index).Terms
	n := len(terms)
	for i, term := range terms {
		target := term.Definition
		if i >= correct {
			// Сдвигаем неверные термины по кругу среди оставшихся зон.
			j := correct + (i-correct+1)%(n-correct)
			target = terms[j].Definition
		}
		s = dropTerm(q, s, term.ID, target)
	}
	return s
}

// TestMatch_PartialScore проверяет пример: 2 верных сопоставления из 4 дают +50.
func TestMatch_PartialScore(t *testing.T) {
	q := newTestMatchQuiz()
	s := placeAll(q, q.Initial(), 2)
	if !q.CanContinue(s) {
		t.Fatalf("Все зоны заполнены, переход должен быть доступен: %+v", s.Placed)
	}
	s = q.Reduce(s, Continue{})
	if s.Score != 50 {
		t.Errorf("Ожидалось 50 очков, получено %d", s.Score)
	}
	if s.Index != 1 || len(s.Placed) != 0 {
		t.Errorf("Ожидался второй раунд без сопоставлений, получено index=%d placed=%v", s.Index, s.Placed)
	}
}

// TestMatch_MaxScore проверяет максимально возможный счёт за 4 раунда.
func TestMatch_MaxScore(t *testing.T) {
	q := newTestMatchQuiz()
	if q.MaxScore() != 400 {
		t.Fatalf("Ожидался максимум 400, получено %d", q.MaxScore())
	}
	s := q.Initial()
	for i := 0; i < q.Len(); i++ {
		s = placeAll(q, s, 4)
		s = q.Reduce(s, Continue{})
	}
	if !s.Completed {
		t.Fatalf("Ожидалось завершение викторины")
	}
	res := q.Results(s)
	if res.Score != 400 || res.MaxScore != 400 {
		t.Errorf("Ожидалось 400/400, получено %d/%d", res.Score, res.MaxScore)
	}
}

// TestMatch_ContinueRequiresAllTargets проверяет, что переход недоступен, пока есть пустые зоны.
func TestMatch_ContinueRequiresAllTargets(t *testing.T) {
	q := newTestMatchQuiz()
	s := dropTerm(q, q.Initial(), "noun", "A person, place, thing, or idea")
	if q.CanContinue(s) {
		t.Fatalf("Переход не должен быть доступен при пустых зонах")
	}
	s = q.Reduce(s, Continue{})
	if s.Index != 0 || s.Score != 0 {
		t.Errorf("Переход с пустыми зонами должен игнорироваться, получено %+v", s)
	}
}

// TestMatch_CorrectImpliesMatchingTerm проверяет, что отметка "верно" означает совпадение идентификаторов.
func TestMatch_CorrectImpliesMatchingTerm(t *testing.T) {
	q := newTestMatchQuiz()
	s := placeAll(q, q.Initial(), 1)
	round := q.Round(s.Index)
	for _, target := range round.Targets() {
		if !q.IsCorrectAt(s, target) {
			continue
		}
		dropped, _ := q.DroppedAt(s, target)
		for _, term := range round.Terms {
			if term.Definition == target && term.ID != dropped.ID {
				t.Errorf("Зона %q отмечена верной, но в ней %q", target, dropped.ID)
			}
		}
	}
	if got := q.correctCount(s); got != 1 {
		t.Errorf("Ожидалось 1 верное сопоставление, получено %d", got)
	}
}

// TestMatch_RedropMovesTerm проверяет, что термин лежит не более чем в одной зоне.
func TestMatch_RedropMovesTerm(t *testing.T) {
	q := newTestMatchQuiz()
	first := "A person, place, thing, or idea"
	second := "An action or state of being"

	s := dropTerm(q, q.Initial(), "noun", first)
	s = dropTerm(q, s, "noun", second)

	if _, ok := s.Placed[first]; ok {
		t.Errorf("Термин должен быть перенесён из первой зоны")
	}
	if s.Placed[second] != "noun" {
		t.Errorf("Ожидался термин noun во второй зоне, получено %q", s.Placed[second])
	}
	if !q.IsPlaced(s, "noun") || q.IsPlaced(s, "verb") {
		t.Errorf("Неверные отметки использованных терминов")
	}
}

// TestMatch_LastDropWins проверяет, что последний сброс вытесняет термин из зоны.
func TestMatch_LastDropWins(t *testing.T) {
	q := newTestMatchQuiz()
	target := "A person, place, thing, or idea"
	s := dropTerm(q, q.Initial(), "verb", target)
	s = dropTerm(q, s, "noun", target)

	if s.Placed[target] != "noun" {
		t.Errorf("Ожидался термин noun, получено %q", s.Placed[target])
	}
	if q.IsPlaced(s, "verb") {
		t.Errorf("Вытесненный термин не должен считаться использованным")
	}
	if !q.IsCorrectAt(s, target) {
		t.Errorf("Зона должна быть отмечена верной")
	}
}

// TestMatch_ClearMatches проверяет, что сброс раунда не трогает счёт и индекс.
func TestMatch_ClearMatches(t *testing.T) {
	q := newTestMatchQuiz()
	s := placeAll(q, q.Initial(), 4)
	s = q.Reduce(s, Continue{})
	s = placeAll(q, s, 3)

	s = q.Reduce(s, ClearMatches{})
	if len(s.Placed) != 0 {
		t.Errorf("Ожидались пустые зоны, получено %v", s.Placed)
	}
	if s.Score != 100 || s.Index != 1 {
		t.Errorf("Счёт и индекс не должны меняться, получено score=%d index=%d", s.Score, s.Index)
	}
}

// TestMatch_InvalidDrop проверяет отклонение чужих терминов и зон на границе сброса.
func TestMatch_InvalidDrop(t *testing.T) {
	q := newTestMatchQuiz()
	s := q.Initial()

	err := q.CheckDrop(s, Drop{Payload: DragPayload{TermID: "atom"}, Target: "A word that describes a noun"})
	if !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("Ожидалась ErrUnknownTerm, получено %v", err)
	}
	err = q.CheckDrop(s, Drop{Payload: DragPayload{TermID: "noun", Text: "Noun"}, Target: "nowhere"})
	if !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Ожидалась ErrUnknownTarget, получено %v", err)
	}
	err = q.CheckDrop(s, Drop{Payload: DragPayload{TermID: "noun", Text: "Verb"}, Target: "A word that describes a noun"})
	if !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("Ожидалась ErrUnknownTerm при несовпадении текста, получено %v", err)
	}

	next := q.Reduce(s, Drop{Payload: DragPayload{TermID: "atom"}, Target: "nowhere"})
	if len(next.Placed) != 0 {
		t.Errorf("Недопустимый сброс не должен менять состояние")
	}
}

// TestMatch_TryAgain проверяет полный сброс после завершения.
func TestMatch_TryAgain(t *testing.T) {
	q := newTestMatchQuiz()
	s := q.Initial()
	for i := 0; i < q.Len(); i++ {
		s = placeAll(q, s, 2)
		s = q.Reduce(s, Continue{})
	}
	if !s.Completed || s.Score != 200 {
		t.Fatalf("Ожидалось завершение с 200 очками, получено %+v", s)
	}

	// После завершения сброс раунда и переход игнорируются.
	if got := q.Reduce(s, Continue{}); got.Score != 200 {
		t.Errorf("Переход после завершения должен игнорироваться")
	}

	s = q.Reduce(s, TryAgain{})
	if s.Completed || s.Score != 0 || s.Index != 0 || len(s.Placed) != 0 {
		t.Errorf("Ожидалось начальное состояние, получено %+v", s)
	}
}

// TestMatch_ReduceDoesNotMutateInput проверяет, что карта сопоставлений исходного состояния не меняется.
func TestMatch_ReduceDoesNotMutateInput(t *testing.T) {
	q := newTestMatchQuiz()
	before := dropTerm(q, q.Initial(), "noun", "A person, place, thing, or idea")
	_ = dropTerm(q, before, "noun", "An action or state of being")
	_ = q.Reduce(before, ClearMatches{})
	if before.Placed["A person, place, thing, or idea"] != "noun" || len(before.Placed) != 1 {
		t.Errorf("Исходное состояние изменено: %v", before.Placed)
	}
}
