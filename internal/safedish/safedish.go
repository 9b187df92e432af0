// Package safedish assesses menu dishes against a diner's allergy
// profile. The ranking itself is produced by an external vision
// collaborator; this package owns the prompt, response validation, and
// the reconciliation of results for display.
package safedish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/providers"
)

// ErrServiceUnavailable indicates the ranking collaborator could not be
// reached or failed outright.
var ErrServiceUnavailable = errors.New("dish ranking service unavailable")

// ErrMalformedResponse indicates the collaborator replied with
// non-JSON or schema-mismatched output. Callers treat this as zero
// recommendations rather than a crash.
var ErrMalformedResponse = errors.New("dish ranking service returned malformed response")

const rankMaxTokens = 2000

// Recommendation is one dish-safety verdict. SafetyRank 1 is safest;
// larger is less safe.
type Recommendation struct {
	DishName              string   `json:"dishName"`
	SafetyRank            int      `json:"safetyRank"`
	Warnings              []string `json:"warnings"`
	RequiredModifications []string `json:"requiredModifications"`
}

// Result is the reconciled response handed to the caller.
type Result struct {
	AnalyzedAt         time.Time        `json:"analyzedAt"`
	EvaluatedAllergens []string         `json:"evaluatedAllergens"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// Service ranks dishes through an LLM vision collaborator.
type Service struct {
	client providers.Client
	model  string
	logger *slog.Logger
}

// NewService creates a ranking service. Model may be empty to use the
// client default.
func NewService(client providers.Client, model string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, model: model, logger: logger}
}

// Rank sends the menu image and allergen profile to the collaborator
// and returns its recommendations in reply order. Transport failures
// surface as ErrServiceUnavailable; unparsable or schema-mismatched
// replies as ErrMalformedResponse.
func (s *Service) Rank(ctx context.Context, image []byte, allergens []allergen.Allergen) ([]Recommendation, error) {
	result, err := s.client.Chat(ctx, &providers.ChatRequest{
		Model: s.model,
		Messages: []providers.Message{{
			Role:    "user",
			Content: buildPrompt(allergens),
			Images:  [][]byte{image},
		}},
		MaxTokens: rankMaxTokens,
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: recommendationsSchema,
		},
	})
	if err != nil {
		if errors.Is(err, providers.ErrStructuredOutput) {
			s.logger.Error("dish ranking reply failed validation", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	var parsed struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(result.ParsedJSON, &parsed); err != nil {
		s.logger.Error("dish ranking reply failed to decode", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return parsed.Recommendations, nil
}

// buildPrompt instructs the collaborator to analyze the menu image
// against the diner's allergens and reply with strict JSON.
func buildPrompt(allergens []allergen.Allergen) string {
	names := make([]string, len(allergens))
	for i, a := range allergens {
		names[i] = a.Name
	}

	return fmt.Sprintf(`You are an expert food safety assistant.
The diner is allergic to the following: %s.

Analyze the attached restaurant menu image and produce a JSON object EXACTLY in the following format (no extra keys):
{
  "recommendations": [
    {
      "dishName": string,
      "safetyRank": number,
      "warnings": [string],
      "requiredModifications": [string]
    }
  ]
}

Rules:
1. Include every dish you can identify. If you are unsure, exclude.
2. Sort recommendations by safest first (safetyRank 1 = safest).
3. If a dish definitely contains an allergen, set safetyRank high and explain in warnings.
4. If preparation modifications can remove allergen risk (e.g., remove cheese for a dairy allergy), list them.
5. Respond with valid JSON only, no markdown, no extra text.`, strings.Join(names, ", "))
}
