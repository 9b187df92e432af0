package textparse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/menulens/menulens/internal/menu"
)

const (
	// DefaultSectionConfidence is assigned to sections opened by a
	// detected header line.
	DefaultSectionConfidence = 0.8

	// FallbackSectionConfidence is assigned to the synthetic section
	// built when no headers were detected at all.
	FallbackSectionConfidence = 0.6

	// fallbackSectionTitle names the synthetic section.
	fallbackSectionTitle = "Menu Items"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// assembler is a two-state machine over the line sequence: either no
// section is open, or one draft section is accumulating items. Empty
// drafts are discarded, never emitted.
type assembler struct {
	sections []menu.Section
	open     *menu.Section
	logger   *slog.Logger
}

// AssembleSections groups classified lines into ordered sections.
// Blank lines are skipped. A header line closes and emits the open
// section when it has items, discards it otherwise, and opens a fresh
// draft either way. Item lines are parsed and appended to the open
// section; item lines seen before any header are left to the fallback
// pass. If no section was ever emitted, all item-classified lines in
// the input form one synthetic "Menu Items" section — provided at
// least one of them parsed.
func AssembleSections(lines []string, logger *slog.Logger) []menu.Section {
	if logger == nil {
		logger = slog.Default()
	}
	a := &assembler{logger: logger}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case IsSectionHeader(line):
			a.openSection(line)
		case IsMenuItem(line) && a.open != nil:
			a.appendItem(line, i)
		}
	}
	a.closeSection()

	if len(a.sections) == 0 {
		return fallbackSection(lines, logger)
	}
	return a.sections
}

// openSection emits the current draft if it holds items, then starts a
// new draft. An empty draft is dropped silently: consecutive headers
// must never produce empty sections.
func (a *assembler) openSection(line string) {
	a.closeSection()
	a.open = &menu.Section{
		ID:         uuid.New().String(),
		Title:      CleanSectionTitle(line),
		Confidence: DefaultSectionConfidence,
	}
}

// closeSection emits the open draft when it has at least one item.
func (a *assembler) closeSection() {
	if a.open != nil && len(a.open.Items) > 0 {
		a.sections = append(a.sections, *a.open)
	}
	a.open = nil
}

func (a *assembler) appendItem(line string, index int) {
	item, ok := ParseItem(line, index)
	if !ok {
		a.logger.Debug("skipping unparsable item line", "line", line)
		return
	}
	a.open.Items = append(a.open.Items, item)
}

// fallbackSection builds the synthetic section from every
// item-classified line in the input. Returns nil when nothing parsed;
// an empty section list is a valid result, not an error.
func fallbackSection(lines []string, logger *slog.Logger) []menu.Section {
	var items []menu.Item
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !IsMenuItem(line) {
			continue
		}
		item, ok := ParseItem(line, i)
		if !ok {
			logger.Debug("skipping unparsable item line", "line", line)
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}
	return []menu.Section{{
		ID:         uuid.New().String(),
		Title:      fallbackSectionTitle,
		Items:      items,
		Confidence: FallbackSectionConfidence,
	}}
}

// CleanSectionTitle strips non-word characters from a header line and
// collapses runs of whitespace.
func CleanSectionTitle(title string) string {
	cleaned := nonWordPattern.ReplaceAllString(title, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
