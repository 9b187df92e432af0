// Package reader is the text-reader collaborator boundary: it turns an
// uploaded file (PDF or image) into raw text blocks with a source
// confidence, without interpreting the text. Menu structure is the
// pipeline's job, not the reader's.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/menulens/menulens/internal/menu"
)

// ErrUnsupportedType is returned for mime types the reader cannot
// handle. Callers should treat it as a validation failure, not a bug.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrDecode is returned when a supported file cannot be decoded by the
// underlying engine.
var ErrDecode = errors.New("failed to decode input")

const (
	// PDFConfidence is the fixed confidence for PDF text extraction;
	// embedded text does not go through OCR.
	PDFConfidence = 0.95

	// OCRConfidence is the confidence assigned to Tesseract output.
	// The binding reports no aggregate confidence, so a conservative
	// fixed value stands in.
	OCRConfidence = 0.7

	// VisionConfidence is the confidence assigned to LLM-vision text
	// extraction.
	VisionConfidence = 0.85
)

// Extraction is the reader's output: ordered raw text blocks (one per
// page or region) and an aggregate confidence.
type Extraction struct {
	Blocks     []menu.RawTextBlock
	Confidence float64
}

// OCREngine recognizes text in a single image.
type OCREngine interface {
	Recognize(image []byte) (string, error)
}

// Reader dispatches extraction by mime type.
type Reader struct {
	ocr    OCREngine
	vision *VisionReader
	logger *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithOCREngine sets the local OCR engine for images.
func WithOCREngine(e OCREngine) Option {
	return func(r *Reader) { r.ocr = e }
}

// WithVisionReader sets the LLM-vision reader, used for images when no
// OCR engine is configured or as a fallback when OCR fails.
func WithVisionReader(v *VisionReader) Option {
	return func(r *Reader) { r.vision = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// New creates a Reader.
func New(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Extract pulls raw text out of a file. PDFs yield one block per page;
// images yield a single block. Returns ErrUnsupportedType for anything
// other than PDF or image input.
func (r *Reader) Extract(ctx context.Context, data []byte, mimeType string) (*Extraction, error) {
	switch {
	case mimeType == "application/pdf":
		return r.extractPDF(data)
	case strings.HasPrefix(mimeType, "image/"):
		return r.extractImage(ctx, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// extractImage runs OCR when an engine is configured, falling back to
// the LLM-vision reader on OCR failure.
func (r *Reader) extractImage(ctx context.Context, data []byte) (*Extraction, error) {
	if r.ocr != nil {
		text, err := r.ocr.Recognize(data)
		if err == nil {
			return singleBlock(NormalizeText(text), OCRConfidence), nil
		}
		if r.vision == nil {
			return nil, fmt.Errorf("%w: ocr failed: %v", ErrDecode, err)
		}
		r.logger.Warn("ocr failed, falling back to vision reader", "error", err)
	}

	if r.vision == nil {
		return nil, fmt.Errorf("%w: no image reader configured", ErrUnsupportedType)
	}

	text, err := r.vision.ReadImage(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("vision text extraction failed: %w", err)
	}
	return singleBlock(NormalizeText(text), VisionConfidence), nil
}

func singleBlock(text string, confidence float64) *Extraction {
	return &Extraction{
		Blocks:     []menu.RawTextBlock{{Text: text, Confidence: confidence}},
		Confidence: confidence,
	}
}
