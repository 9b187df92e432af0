package reader

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/menulens/menulens/internal/providers"
)

// visionPrompt instructs the model to transcribe, not interpret.
const visionPrompt = "Extract all text from this image. Return only the raw text, no explanations or formatting."

const visionMaxTokens = 1000

// VisionReader extracts text from images through an LLM vision
// collaborator.
type VisionReader struct {
	client providers.Client
	model  string
}

// NewVisionReader creates a vision reader. Model may be empty to use
// the client default.
func NewVisionReader(client providers.Client, model string) *VisionReader {
	return &VisionReader{client: client, model: model}
}

// ReadImage transcribes a single image.
func (v *VisionReader) ReadImage(ctx context.Context, image []byte) (string, error) {
	result, err := v.client.Chat(ctx, &providers.ChatRequest{
		Model: v.model,
		Messages: []providers.Message{{
			Role:    "user",
			Content: visionPrompt,
			Images:  [][]byte{image},
		}},
		MaxTokens: visionMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Content), nil
}

// ReadImages transcribes several image crops concurrently. Results come
// back in input order regardless of completion order: each in-flight
// call is tagged with its original index.
func (v *VisionReader) ReadImages(ctx context.Context, images [][]byte) ([]string, error) {
	texts := make([]string, len(images))
	errs := make([]error, len(images))
	var wg sync.WaitGroup

	for i, img := range images {
		wg.Add(1)
		go func(idx int, data []byte) {
			defer wg.Done()
			text, err := v.ReadImage(ctx, data)
			texts[idx] = text
			errs[idx] = err
		}(i, img)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("crop %d failed: %w", i, err)
		}
	}
	return texts, nil
}
