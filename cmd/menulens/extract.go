package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menulens/menulens/internal/cli"
	"github.com/menulens/menulens/internal/config"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract structured menu data from a PDF or image",
	Long: `Extract structured menu data from a local menu file.

The file's text is extracted (PDF text layer, or OCR for images), then
structured into sections, items, prices and ingredients, with allergen
alerts attached.

Examples:
  menulens extract menu.pdf
  menulens extract menu.jpg -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		mimeType := detectMIMEType(args[0], data)

		client := newLLMClient(cfg)
		r := newReader(cfg, client, logger)

		extraction, err := r.Extract(ctx, data, mimeType)
		if err != nil {
			return fmt.Errorf("text extraction failed: %w", err)
		}

		processor := newProcessor(cfg, client, logger)
		processed, err := processor.Process(ctx, extraction.Blocks)
		if err != nil {
			return fmt.Errorf("menu structuring failed: %w", err)
		}

		return cli.Output(processed)
	},
}

// detectMIMEType resolves a file's MIME type by extension, falling back
// to content sniffing.
func detectMIMEType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return http.DetectContentType(data)
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
