package textparse

import "github.com/menulens/menulens/internal/menu"

// Structure-confidence factor weights. Each factor contributes only
// when its precondition holds, and the sum is normalized by the number
// of factors whose precondition was satisfied — not by three
// unconditionally.
const (
	multiSectionWeight = 0.3
	pricedItemsWeight  = 0.4
	describedWeight    = 0.3
)

// StructureConfidence estimates how well the section structure was
// detected, in [0,1]. Zero sections score zero.
func StructureConfidence(sections []menu.Section) float64 {
	if len(sections) == 0 {
		return 0
	}

	totalScore := 0.0
	factors := 0

	// Factor 1: more than one section found. Counted even when it
	// contributes nothing, so a single flat section is penalized.
	if len(sections) > 1 {
		totalScore += multiSectionWeight
	}
	factors++

	totalItems := 0
	priced := 0
	described := 0
	for _, s := range sections {
		for _, item := range s.Items {
			totalItems++
			if item.Price != nil {
				priced++
			}
			if item.Description != "" {
				described++
			}
		}
	}

	// Factors 2 and 3 only apply when there are items at all.
	if totalItems > 0 {
		totalScore += float64(priced) / float64(totalItems) * pricedItemsWeight
		factors++

		totalScore += float64(described) / float64(totalItems) * describedWeight
		factors++
	}

	return menu.ClampConfidence(totalScore / float64(factors))
}

// OverallConfidence combines the text reader's quality score with the
// structure-detection score.
func OverallConfidence(textQuality, structureDetection float64) float64 {
	return menu.ClampConfidence((textQuality + structureDetection) / 2)
}
