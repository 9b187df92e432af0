package safedish

import (
	"sort"
	"time"

	"github.com/menulens/menulens/internal/allergen"
)

// Reconcile prepares collaborator recommendations for display: a stable
// ascending sort by safety rank (ties keep reply order) tagged with the
// allergen ids that were evaluated. The ranking itself is the
// collaborator's; nothing here rescores dishes.
func Reconcile(recommendations []Recommendation, selected []allergen.Allergen) Result {
	sorted := make([]Recommendation, len(recommendations))
	copy(sorted, recommendations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SafetyRank < sorted[j].SafetyRank
	})

	return Result{
		AnalyzedAt:         time.Now().UTC(),
		EvaluatedAllergens: allergen.IDs(selected),
		Recommendations:    sorted,
	}
}
