package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/menulens/menulens/internal/providers"
)

// stubOCR is a fixed-output OCREngine for tests.
type stubOCR struct {
	text string
	err  error
}

func (s *stubOCR) Recognize([]byte) (string, error) { return s.text, s.err }

func TestExtract_UnsupportedType(t *testing.T) {
	r := New()
	_, err := r.Extract(context.Background(), []byte("data"), "text/html")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedType", err)
	}
}

func TestExtract_ImageViaOCR(t *testing.T) {
	r := New(WithOCREngine(&stubOCR{text: "APPETIZERS\nWings $8.99\n"}))

	got, err := r.Extract(context.Background(), []byte("img"), "image/png")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("len(Blocks) = %d, want 1", len(got.Blocks))
	}
	if got.Blocks[0].Text != "APPETIZERS\nWings $8.99" {
		t.Errorf("Text = %q, want normalized OCR output", got.Blocks[0].Text)
	}
	if got.Blocks[0].Confidence != OCRConfidence {
		t.Errorf("Confidence = %v, want %v", got.Blocks[0].Confidence, OCRConfidence)
	}
}

func TestExtract_ImageOCRFailureNoFallback(t *testing.T) {
	r := New(WithOCREngine(&stubOCR{err: errors.New("tesseract crashed")}))

	_, err := r.Extract(context.Background(), []byte("img"), "image/jpeg")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Extract() error = %v, want ErrDecode", err)
	}
}

func TestExtract_ImageOCRFailureVisionFallback(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "MAINS\nGrilled Salmon $24.00"

	r := New(
		WithOCREngine(&stubOCR{err: errors.New("tesseract crashed")}),
		WithVisionReader(NewVisionReader(mock, "")),
	)

	got, err := r.Extract(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Blocks[0].Text != "MAINS\nGrilled Salmon $24.00" {
		t.Errorf("Text = %q, want vision output", got.Blocks[0].Text)
	}
	if got.Blocks[0].Confidence != VisionConfidence {
		t.Errorf("Confidence = %v, want %v", got.Blocks[0].Confidence, VisionConfidence)
	}
}

func TestExtract_ImageNoReaderConfigured(t *testing.T) {
	r := New()
	_, err := r.Extract(context.Background(), []byte("img"), "image/png")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedType", err)
	}
}

func TestExtract_InvalidPDF(t *testing.T) {
	r := New()
	_, err := r.Extract(context.Background(), []byte("definitely not a pdf"), "application/pdf")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Extract() error = %v, want ErrDecode", err)
	}
}

func TestReadImages_PreservesOrder(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseFunc = func(req *providers.ChatRequest) (string, error) {
		// Echo the image payload back so each crop is identifiable.
		return string(req.Messages[0].Images[0]), nil
	}

	v := NewVisionReader(mock, "")
	images := [][]byte{[]byte("crop-0"), []byte("crop-1"), []byte("crop-2"), []byte("crop-3")}

	texts, err := v.ReadImages(context.Background(), images)
	if err != nil {
		t.Fatalf("ReadImages() error = %v", err)
	}
	for i, want := range []string{"crop-0", "crop-1", "crop-2", "crop-3"} {
		if texts[i] != want {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want)
		}
	}
}

func TestReadImages_FirstErrorSurfaces(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseFunc = func(req *providers.ChatRequest) (string, error) {
		if string(req.Messages[0].Images[0]) == "bad" {
			return "", errors.New("unreadable crop")
		}
		return "ok", nil
	}

	v := NewVisionReader(mock, "")
	_, err := v.ReadImages(context.Background(), [][]byte{[]byte("good"), []byte("bad")})
	if err == nil {
		t.Fatal("ReadImages() error = nil, want error")
	}
}
