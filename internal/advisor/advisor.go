// Package advisor asks a language model for conflict resolution suggestions
// and validates its answers before they reach users.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/jadwal/internal/conflict"
	"github.com/javiermolinar/jadwal/internal/llm"
)

// ErrMaxRetriesExceeded is returned when no valid hint survived all attempts.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, validation still failing")

// DefaultRetries is the number of correction rounds after the first answer.
const DefaultRetries = 2

// Hint is the model's answer for one conflict.
type Hint struct {
	Index       int      `json:"index"`
	Suggestions []string `json:"suggestions"`
}

type response struct {
	Hints []Hint `json:"hints"`
}

// Advisor turns conflicts into model-written suggestions.
type Advisor struct {
	client  llm.Client
	retries int
	compact bool
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithRetries sets how many times an invalid answer is sent back for correction.
func WithRetries(n int) Option {
	return func(a *Advisor) {
		if n >= 0 {
			a.retries = n
		}
	}
}

// WithCompactPrompt selects the short system prompt used for small local models.
func WithCompactPrompt(compact bool) Option {
	return func(a *Advisor) { a.compact = compact }
}

// UseCompactPrompt reports whether provider usually runs small local models.
func UseCompactPrompt(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case llm.ProviderOllama, llm.ProviderLMStudio, "lm-studio":
		return true
	default:
		return false
	}
}

// New creates an Advisor using client.
func New(client llm.Client, opts ...Option) *Advisor {
	a := &Advisor{client: client, retries: DefaultRetries}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise returns suggestions keyed by the index of each conflict in conflicts.
// Invalid answers are sent back to the model with the validation errors; if
// retries run out, the hints that did validate are returned.
func (a *Advisor) Advise(ctx context.Context, conflicts []conflict.Conflict) (map[int][]string, error) {
	if len(conflicts) == 0 {
		return nil, nil
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt(a.compact)},
		{Role: llm.RoleUser, Content: describe(conflicts)},
	}

	best := map[int][]string{}
	for attempt := 0; attempt <= a.retries; attempt++ {
		var resp response
		if err := a.client.ChatJSON(ctx, messages, &resp); err != nil {
			return nil, fmt.Errorf("asking for suggestions (attempt %d): %w", attempt+1, err)
		}

		result := Validate(resp.Hints, len(conflicts))
		if len(result.Accepted) > len(best) {
			best = result.Accepted
		}
		if result.Valid {
			return result.Accepted, nil
		}

		if attempt < a.retries {
			answer, _ := json.Marshal(resp)
			messages = append(messages,
				llm.Message{Role: llm.RoleAssistant, Content: string(answer)},
				llm.Message{Role: llm.RoleUser, Content: result.FormatErrors()},
			)
		}
	}

	if len(best) == 0 {
		return nil, ErrMaxRetriesExceeded
	}
	return best, nil
}
