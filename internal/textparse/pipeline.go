package textparse

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/menu"
)

// ErrNoInput is returned when Process receives no text blocks. This is
// the only hard failure the pipeline surfaces; everything else degrades
// into smaller output and lower confidence.
var ErrNoInput = errors.New("no text blocks to process")

// Strategy selects how raw text blocks are structured.
type Strategy string

const (
	// StrategyHeuristic runs the local rule-based parser and the
	// local document-wide allergen scan.
	StrategyHeuristic Strategy = "heuristic"

	// StrategyCollaborator delegates per-block text structuring to an
	// external collaborator (one call per block, issued concurrently,
	// input order preserved) and skips the local allergen pass.
	StrategyCollaborator Strategy = "collaborator"
)

// Structurer is the external text-structuring collaborator used by
// StrategyCollaborator: it rewrites one raw block into cleaner
// line-oriented menu text.
type Structurer interface {
	StructureBlock(ctx context.Context, text string) (string, error)
}

// Processor is the menu structuring pipeline. It is the only component
// that composes the classifier, item parser, section assembler,
// allergen matcher and confidence scorer. A Processor is safe for
// concurrent use; each Process call keeps all state local.
type Processor struct {
	strategy   Strategy
	structurer Structurer
	logger     *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithStrategy selects the structuring strategy.
func WithStrategy(s Strategy) Option {
	return func(p *Processor) { p.strategy = s }
}

// WithStructurer sets the external structuring collaborator. Required
// for StrategyCollaborator.
func WithStructurer(s Structurer) Option {
	return func(p *Processor) { p.structurer = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a pipeline with the heuristic strategy by
// default.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{strategy: StrategyHeuristic}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Process turns an ordered sequence of raw text blocks into structured
// menu data. It never fails on malformed text: unparsable content
// yields a smaller section list and lower confidence. The only error
// is ErrNoInput for an empty block list.
func (p *Processor) Process(ctx context.Context, blocks []menu.RawTextBlock) (menu.ProcessedData, error) {
	if len(blocks) == 0 {
		return menu.ProcessedData{}, ErrNoInput
	}

	textQuality := aggregateTextQuality(blocks)

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}

	withAlerts := true
	if p.strategy == StrategyCollaborator && p.structurer != nil {
		texts = p.structureBlocks(ctx, texts)
		withAlerts = false
	}

	fullText := strings.Join(texts, "\n")
	sections := AssembleSections(strings.Split(fullText, "\n"), p.logger)

	structure := StructureConfidence(sections)
	data := menu.ProcessedData{
		Sections: sections,
		Confidence: menu.Confidence{
			Overall:            OverallConfidence(textQuality, structure),
			TextQuality:        menu.ClampConfidence(textQuality),
			StructureDetection: structure,
		},
	}
	if withAlerts {
		data.Alerts = allergen.ScanDocument(fullText, sections)
	}
	return data, nil
}

// structureBlocks sends every block to the collaborator concurrently.
// Results are written back by original index so input ordering survives
// arbitrary completion order. A failed block degrades to its raw text.
func (p *Processor) structureBlocks(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func(idx int, raw string) {
			defer wg.Done()
			structured, err := p.structurer.StructureBlock(ctx, raw)
			if err != nil {
				p.logger.Warn("block structuring failed, using raw text", "block", idx, "error", err)
				out[idx] = raw
				return
			}
			out[idx] = structured
		}(i, text)
	}

	wg.Wait()
	return out
}

// aggregateTextQuality is the mean of the per-block reader confidences.
func aggregateTextQuality(blocks []menu.RawTextBlock) float64 {
	sum := 0.0
	for _, b := range blocks {
		sum += b.Confidence
	}
	return sum / float64(len(blocks))
}
