package reader

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes image text through the Tesseract OCR
// engine. Tesseract must be installed on the host.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates an engine for the given language
// ("eng" when empty; multiple languages join with "+").
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

// Recognize performs OCR on image bytes (PNG, JPEG, TIFF). A fresh
// Tesseract client is used per call; gosseract clients are not safe
// for concurrent use.
func (e *TesseractEngine) Recognize(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("failed to set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
