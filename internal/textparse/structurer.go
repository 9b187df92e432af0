package textparse

import (
	"context"
	"strings"

	"github.com/menulens/menulens/internal/providers"
)

// structurePrompt asks the collaborator to reshape a noisy text region
// into the line-oriented form the assembler consumes. It must not
// invent dishes or drop prices.
const structurePrompt = `You are reformatting raw text extracted from a restaurant menu.
Rewrite the text below into clean menu lines, one entry per line:
- section titles on their own line, unchanged
- each dish as: Name - description $price
Keep every dish, price and ingredient that appears. Do not add anything.
Return only the reformatted text, no explanations.

Text:
`

const structureMaxTokens = 2000

// LLMStructurer delegates per-block text structuring to an LLM
// collaborator. It satisfies Structurer.
type LLMStructurer struct {
	client providers.Client
	model  string
}

// NewLLMStructurer creates a structurer. Model may be empty to use the
// client default.
func NewLLMStructurer(client providers.Client, model string) *LLMStructurer {
	return &LLMStructurer{client: client, model: model}
}

// StructureBlock rewrites one raw text block into clean line-oriented
// menu text.
func (s *LLMStructurer) StructureBlock(ctx context.Context, text string) (string, error) {
	result, err := s.client.Chat(ctx, &providers.ChatRequest{
		Model: s.model,
		Messages: []providers.Message{{
			Role:    "user",
			Content: structurePrompt + text,
		}},
		MaxTokens: structureMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Content), nil
}
