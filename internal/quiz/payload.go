package quiz

import "fmt"

// DragPayload - данные, которые переносятся вместе с термином от начала
// перетаскивания до зоны сброса.
type DragPayload struct {
	TermID string
	Text   string
}

// NewDragPayload упаковывает термин для перетаскивания.
func NewDragPayload(t Term) DragPayload {
	return DragPayload{TermID: t.ID, Text: t.Text}
}

// Resolve проверяет переносимые данные на границе сброса и возвращает термин раунда.
func (r Round) Resolve(p DragPayload) (Term, error) {
	term, ok := r.Term(p.TermID)
	if !ok {
		return Term{}, fmt.Errorf("%w: %q", ErrUnknownTerm, p.TermID)
	}
	if p.Text != "" && p.Text != term.Text {
		return Term{}, fmt.Errorf("%w: %q does not match %q", ErrUnknownTerm, p.Text, term.Text)
	}
	return term, nil
}

// HasTarget сообщает, есть ли в раунде зона сброса с таким определением.
func (r Round) HasTarget(definition string) bool {
	for _, t := range r.Terms {
		if t.Definition == definition {
			return true
		}
	}
	return false
}
