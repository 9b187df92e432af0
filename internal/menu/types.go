// Package menu defines the structured menu model produced by the
// extraction pipeline: sections of items with prices, ingredients,
// allergen warnings and confidence scores.
//
// All values here are immutable once returned to the caller. Nothing in
// this package is persisted; a ProcessedData is built per request and
// handed back whole.
package menu

// RawTextBlock is one logically contiguous region of extracted text,
// such as a single PDF page or one OCR crop. Confidence is the text
// reader's estimate of extraction quality in [0,1].
type RawTextBlock struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Position is the source rectangle an item was detected in, used for
// provenance and UI highlighting. A zero Position means the layout is
// unknown (e.g. the text came through a collaborator with no geometry).
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Price is a monetary amount parsed out of a text fragment. RawText is
// the exact substring the price was parsed from.
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	RawText  string  `json:"rawText"`
}

// Item is a single dish on the menu.
type Item struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Price            *Price   `json:"price,omitempty"`
	Ingredients      []string `json:"ingredients"`
	AllergenWarnings []string `json:"allergenWarnings"`
	Confidence       float64  `json:"confidence"`
	Position         Position `json:"position"`
}

// Section is a titled group of items in detection order. Sections are
// never emitted empty.
type Section struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Items      []Item  `json:"items"`
	Confidence float64 `json:"confidence"`
}

// Severity is the coarse risk tier assigned to an allergen alert.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// AllergenAlert is a document-wide allergen finding. MenuItemID is a
// lookup back-reference to the first item carrying the same warning; it
// is empty when no item matched.
type AllergenAlert struct {
	Allergen   string   `json:"allergen"`
	Confidence float64  `json:"confidence"`
	Context    string   `json:"context"`
	Severity   Severity `json:"severity"`
	MenuItemID string   `json:"menuItemId,omitempty"`
}

// Confidence is the extraction quality triple for a processed menu.
type Confidence struct {
	Overall            float64 `json:"overall"`
	TextQuality        float64 `json:"textQuality"`
	StructureDetection float64 `json:"structureDetection"`
}

// ProcessedData is the final structured menu handed back by the
// pipeline. Alerts is nil when the pipeline ran without a local
// allergen-detection pass.
type ProcessedData struct {
	Sections   []Section       `json:"menuSections"`
	Confidence Confidence      `json:"confidence"`
	Alerts     []AllergenAlert `json:"allergenAlerts,omitempty"`
}

// Items returns all items across sections in detection order.
func (p ProcessedData) Items() []Item {
	var items []Item
	for _, s := range p.Sections {
		items = append(items, s.Items...)
	}
	return items
}

// ClampConfidence bounds a confidence score to [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
