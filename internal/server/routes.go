package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/menulens/menulens/internal/allergen"
	"github.com/menulens/menulens/internal/menu"
	"github.com/menulens/menulens/internal/reader"
	"github.com/menulens/menulens/internal/safedish"
)

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("POST /menu/extract-text", s.handleExtractText)
	mux.HandleFunc("POST /safe-dishes", s.handleSafeDishes)
}

// allowedUploadTypes are the MIME types accepted on upload endpoints.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type errorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// extractTextResponse is the reply shape of POST /menu/extract-text.
type extractTextResponse struct {
	Success bool               `json:"success"`
	Data    extractTextPayload `json:"data"`
}

type extractTextPayload struct {
	ID          string             `json:"id"`
	Metadata    uploadMetadata     `json:"metadata"`
	RawText     string             `json:"rawText"`
	MenuData    menu.ProcessedData `json:"menuData"`
	ProcessedAt string             `json:"processedAt"`
}

type uploadMetadata struct {
	FileName     string `json:"fileName"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
	ProcessingMs int64  `json:"processingMs"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Error: errorBody{
			Message:   message,
			Code:      code,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleHealth returns basic liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady reports whether the ranking collaborator is wired. The
// extract pipeline is always available.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ready",
		"extract":      true,
		"dish_ranking": s.ranker != nil,
	})
}

// upload is a validated multipart file upload.
type upload struct {
	data     []byte
	mimeType string
	fileName string
}

// readUpload pulls the "menu" file part out of a multipart request,
// enforcing the size cap and the allowed MIME types.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
			return upload{}, false
		}
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "expected multipart form data with a menu file")
		return upload{}, false
	}

	file, header, err := r.FormFile("menu")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "no menu file provided")
		return upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read uploaded file")
		return upload{}, false
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !allowedUploadTypes[mimeType] {
		writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "only JPEG, PNG and PDF uploads are supported")
		return upload{}, false
	}

	return upload{data: data, mimeType: mimeType, fileName: header.Filename}, true
}

// handleExtractText accepts a menu file upload, extracts its text and
// returns the structured menu data.
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	start := time.Now()

	extraction, err := s.reader.Extract(r.Context(), up.data, up.mimeType)
	if err != nil {
		s.logger.Error("text extraction failed", "mime_type", up.mimeType, "error", err)
		switch {
		case errors.Is(err, reader.ErrUnsupportedType):
			writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "unsupported file type")
		case errors.Is(err, reader.ErrDecode):
			writeError(w, http.StatusBadRequest, "DECODE_FAILED", "the uploaded file could not be decoded")
		default:
			writeError(w, http.StatusInternalServerError, "EXTRACTION_FAILED", "text extraction failed")
		}
		return
	}

	processed, err := s.processor.Process(r.Context(), extraction.Blocks)
	if err != nil {
		s.logger.Error("menu structuring failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "STRUCTURING_FAILED", "could not structure the extracted menu text")
		return
	}

	texts := make([]string, len(extraction.Blocks))
	for i, block := range extraction.Blocks {
		texts[i] = block.Text
	}
	rawText := strings.Join(texts, "\n")

	writeJSON(w, http.StatusOK, extractTextResponse{
		Success: true,
		Data: extractTextPayload{
			ID: uuid.New().String(),
			Metadata: uploadMetadata{
				FileName:     up.fileName,
				MimeType:     up.mimeType,
				SizeBytes:    int64(len(up.data)),
				ProcessingMs: time.Since(start).Milliseconds(),
			},
			RawText:     rawText,
			MenuData:    processed,
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// selectedAllergens resolves the "allergens" form input, which may be a
// JSON array string, a comma separated list, or repeated fields.
// Unknown identifiers are dropped.
func selectedAllergens(r *http.Request) []allergen.Allergen {
	values := r.Form["allergens"]
	if r.MultipartForm != nil && len(r.MultipartForm.Value["allergens"]) > 0 {
		values = r.MultipartForm.Value["allergens"]
	}
	if len(values) == 1 {
		return allergen.ParseSelection(values[0])
	}

	var selected []allergen.Allergen
	for _, v := range values {
		selected = append(selected, allergen.ParseSelection(v)...)
	}
	return selected
}

// handleSafeDishes accepts a menu image and an allergen selection and
// returns the collaborator's safety-ranked dish list.
func (s *Server) handleSafeDishes(w http.ResponseWriter, r *http.Request) {
	if s.ranker == nil {
		writeError(w, http.StatusServiceUnavailable, "RANKING_DISABLED", "dish ranking is not configured")
		return
	}

	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if up.mimeType == "application/pdf" {
		writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "dish ranking requires a menu image")
		return
	}

	selected := selectedAllergens(r)
	if len(selected) == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ALLERGENS", "at least one allergen must be selected")
		return
	}

	recommendations, err := s.ranker.Rank(r.Context(), up.data, selected)
	if err != nil {
		switch {
		case errors.Is(err, safedish.ErrMalformedResponse):
			// A garbled reply degrades to an empty list rather than an error.
			s.logger.Warn("dish ranking returned malformed response", "error", err)
			recommendations = nil
		default:
			s.logger.Error("dish ranking failed", "error", err)
			writeError(w, http.StatusBadGateway, "RANKING_UNAVAILABLE", "dish ranking service is unavailable")
			return
		}
	}

	result := safedish.Reconcile(recommendations, selected)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}
