package generator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"party-trivia-service/internal/domain"
)

type questionsEnvelope struct {
	Questions []questionPayload `json:"questions" validate:"required,min=1,dive"`
}

type questionPayload struct {
	Type     string          `json:"type" validate:"required"`
	Question string          `json:"question" validate:"required"`
	Options  []optionPayload `json:"options" validate:"required,len=4,dive"`
	Answer   string          `json:"answer" validate:"required"`
}

type optionPayload struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// validateBatch checks the decoded envelope against the question shape and
// reports the first violation. No partial acceptance: one bad question fails
// the whole batch.
func (g *Generator) validateBatch(envelope questionsEnvelope, count int) ([]domain.Question, error) {
	if err := g.validate.Struct(envelope); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return nil, fmt.Errorf("field %s failed %q", fields[0].Namespace(), fields[0].Tag())
		}
		return nil, err
	}

	if len(envelope.Questions) != count {
		return nil, fmt.Errorf("expected %d questions, got %d", count, len(envelope.Questions))
	}

	questions := make([]domain.Question, 0, len(envelope.Questions))
	for i, q := range envelope.Questions {
		seen := make(map[string]struct{}, len(q.Options))
		options := make([]domain.Option, 0, len(q.Options))
		answerFound := false
		for _, opt := range q.Options {
			if _, dup := seen[opt.Value]; dup {
				return nil, fmt.Errorf("question %d: duplicate option value %q", i, opt.Value)
			}
			seen[opt.Value] = struct{}{}
			if opt.Value == q.Answer {
				answerFound = true
			}
			options = append(options, domain.Option{Label: opt.Label, Value: opt.Value})
		}
		if !answerFound {
			return nil, fmt.Errorf("question %d: answer %q matches no option value", i, q.Answer)
		}
		questions = append(questions, domain.Question{
			Type:     q.Type,
			Question: q.Question,
			Options:  options,
			Answer:   q.Answer,
		})
	}
	return questions, nil
}
