package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/menulens/menulens/internal/config"
	"github.com/menulens/menulens/internal/providers"
	"github.com/menulens/menulens/internal/reader"
	"github.com/menulens/menulens/internal/safedish"
	"github.com/menulens/menulens/internal/textparse"
)

// newLogger builds the shared text logger.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// newLLMClient builds the OpenAI client from config, or nil when no API
// key is available. Commands that need the collaborator check for nil.
func newLLMClient(cfg *config.Config) providers.Client {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil
	}
	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:     apiKey,
		Model:      cfg.LLM.Model,
		RateLimit:  cfg.LLM.RateLimit,
		MaxRetries: cfg.LLM.MaxRetries,
		Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
}

// newReader builds the text reader with OCR and optional vision
// fallback.
func newReader(cfg *config.Config, client providers.Client, logger *slog.Logger) *reader.Reader {
	opts := []reader.Option{
		reader.WithOCREngine(reader.NewTesseractEngine(cfg.Reader.OCRLanguage)),
		reader.WithLogger(logger),
	}
	if cfg.Reader.VisionFallback && client != nil {
		opts = append(opts, reader.WithVisionReader(reader.NewVisionReader(client, cfg.LLM.Model)))
	}
	return reader.New(opts...)
}

// newProcessor builds the structuring pipeline for the configured
// strategy. The collaborator strategy falls back to heuristic when no
// LLM client is available.
func newProcessor(cfg *config.Config, client providers.Client, logger *slog.Logger) *textparse.Processor {
	strategy := textparse.Strategy(cfg.Pipeline.Strategy)
	opts := []textparse.Option{textparse.WithLogger(logger)}

	if strategy == textparse.StrategyCollaborator {
		if client == nil {
			logger.Warn("collaborator strategy configured without an API key, using heuristic")
		} else {
			opts = append(opts,
				textparse.WithStrategy(textparse.StrategyCollaborator),
				textparse.WithStructurer(textparse.NewLLMStructurer(client, cfg.LLM.Model)),
			)
		}
	}
	return textparse.NewProcessor(opts...)
}

// newRanker builds the dish safety ranking service, or nil when no LLM
// client is available.
func newRanker(cfg *config.Config, client providers.Client, logger *slog.Logger) *safedish.Service {
	if client == nil {
		return nil
	}
	return safedish.NewService(client, cfg.LLM.Model, logger)
}
