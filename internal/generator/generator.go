package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"party-trivia-service/internal/domain"
)

// Count bounds accepted by Generate. Enforced before any upstream call.
const (
	MinCount = 1
	MaxCount = 20
)

var (
	// ErrCountOutOfRange is returned without attempting an upstream call.
	ErrCountOutOfRange = fmt.Errorf("count must be between %d and %d", MinCount, MaxCount)
	// ErrBadModelOutput covers unparseable or schema-violating model output.
	// Callers can simply request again; nothing was persisted.
	ErrBadModelOutput = errors.New("model output failed validation")
)

// TextCompleter is the single-call surface of the upstream model: one
// system turn, one user turn, free-form text back.
type TextCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator turns a question count plus optional freeform constraints into a
// validated batch of odd-one-out questions. It is the only boundary between
// untrusted generative text and the rest of the system.
type Generator struct {
	client   TextCompleter
	validate *validator.Validate
}

func New(client TextCompleter) *Generator {
	return &Generator{client: client, validate: validator.New()}
}

// Generate asks the model for exactly count questions and validates the
// response. One request, no retries; retry policy belongs to the caller.
func (g *Generator) Generate(ctx context.Context, count int, userMessage string) ([]domain.Question, error) {
	if count < MinCount || count > MaxCount {
		return nil, ErrCountOutOfRange
	}

	raw, err := g.client.Complete(ctx, systemPrompt(count), userPrompt(count, userMessage))
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadModelOutput, err)
	}

	var envelope questionsEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, fmt.Errorf("%w: parse json: %s", ErrBadModelOutput, err)
	}

	questions, err := g.validateBatch(envelope, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadModelOutput, err)
	}
	return questions, nil
}
