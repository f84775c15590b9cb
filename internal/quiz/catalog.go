package quiz

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog содержит все вопросы обоих режимов викторины.
type Catalog struct {
	Questions []Question `yaml:"questions"`
	Rounds    []Round    `yaml:"rounds"`
}

// DefaultCatalog разбирает каталог, встроенный в бинарник при сборке.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedCatalog)
}

// ParseCatalog разбирает YAML-каталог и проверяет его целостность.
func ParseCatalog(data []byte) (*Catalog, error) {
	const op = "quiz.ParseCatalog"

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	catalog := &Catalog{}
	if err := dec.Decode(catalog); err != nil {
		return nil, fmt.Errorf("%s: failed to decode catalog: %w", op, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return catalog, nil
}

// Validate проверяет, что каталог пригоден для построения викторин.
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("catalog has no questions")
	}
	if len(c.Rounds) == 0 {
		return fmt.Errorf("catalog has no rounds")
	}

	for i, q := range c.Questions {
		if q.Text == "" {
			return fmt.Errorf("question #%d has empty text", i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least two options", q.ID)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.ID == "" {
				return fmt.Errorf("question %d has an option without id", q.ID)
			}
			if seen[o.ID] {
				return fmt.Errorf("question %d has duplicate option %q", q.ID, o.ID)
			}
			seen[o.ID] = true
		}
		if !seen[q.CorrectAnswer] {
			return fmt.Errorf("question %d: correct answer %q is not among options", q.ID, q.CorrectAnswer)
		}
	}

	for _, r := range c.Rounds {
		if len(r.Terms) == 0 {
			return fmt.Errorf("round %d has no terms", r.ID)
		}
		ids := make(map[string]bool, len(r.Terms))
		definitions := make(map[string]bool, len(r.Terms))
		for _, t := range r.Terms {
			if t.ID == "" || t.Definition == "" {
				return fmt.Errorf("round %d has an incomplete term", r.ID)
			}
			if ids[t.ID] {
				return fmt.Errorf("round %d has duplicate term %q", r.ID, t.ID)
			}
			// Определения являются ключами зон сброса, поэтому должны быть уникальны.
			if definitions[t.Definition] {
				return fmt.Errorf("round %d has duplicate definition %q", r.ID, t.Definition)
			}
			ids[t.ID] = true
			definitions[t.Definition] = true
		}
	}
	return nil
}
