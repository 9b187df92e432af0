package reader

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/menulens/menulens/internal/menu"
)

// extractPDF validates the document and extracts its embedded text,
// one block per page. Pages with no extractable text are skipped; a
// document where every page is empty still succeeds with zero blocks
// (scanned PDFs without a text layer land here).
func (r *Reader) extractPDF(data []byte) (*Extraction, error) {
	// pdfcpu catches corrupt and encrypted documents up front with
	// better diagnostics than the text extractor.
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	blocks := make([]menu.RawTextBlock, 0, pageCount)
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			r.logger.Warn("skipping unreadable pdf page", "page", i, "error", err)
			continue
		}
		text = NormalizeText(text)
		if text == "" {
			continue
		}
		blocks = append(blocks, menu.RawTextBlock{Text: text, Confidence: PDFConfidence})
	}

	return &Extraction{Blocks: blocks, Confidence: PDFConfidence}, nil
}
