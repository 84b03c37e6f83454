package merchant

import (
	"sort"
	"strings"

	"github.com/paisaflow/paisaflow/internal/model"
)

// decideConflict is the pure decision table over (existing-state,
// proposed-state) pairs:
//
//	existing alias differs              -> OVERWRITE_EXISTING
//	display name reused, same category  -> NONE (affected keys listed)
//	display name reused, other category -> CATEGORY_MISMATCH
//	otherwise                           -> NONE
//
// DISPLAY_NAME_EXISTS stays in the taxonomy for callers that want to
// confirm any display-name reuse, but this table never produces it.
func decideConflict(existing *model.MerchantAlias, others []model.MerchantAlias, proposedDisplayName, proposedCategory string) model.AliasConflict {
	conflict := model.AliasConflict{
		Type:                model.ConflictNone,
		ProposedDisplayName: proposedDisplayName,
		ProposedCategory:    proposedCategory,
	}

	if existing != nil &&
		(existing.DisplayName != proposedDisplayName || existing.Category != proposedCategory) {
		conflict.Type = model.ConflictOverwriteExisting
		conflict.ExistingDisplayName = existing.DisplayName
		conflict.ExistingCategory = existing.Category
		return conflict
	}

	if len(others) == 0 {
		return conflict
	}

	affected := make([]string, 0, len(others))
	categorySet := make(map[string]bool, len(others))
	for _, alias := range others {
		affected = append(affected, alias.CanonicalKey)
		categorySet[alias.Category] = true
	}
	sort.Strings(affected)
	conflict.AffectedMerchants = affected

	if len(categorySet) == 1 && categorySet[proposedCategory] {
		// Allowed grouping: the caller may choose to relabel the affected
		// merchants too.
		return conflict
	}

	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	conflict.Type = model.ConflictCategoryMismatch
	conflict.ExistingCategory = strings.Join(categories, ", ")
	return conflict
}
