package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paisaflow/paisaflow/internal/model"
)

func TestDecideConflict(t *testing.T) {
	tests := []struct {
		existing *model.MerchantAlias
		name     string
		proposed model.MerchantAlias
		others   []model.MerchantAlias
		want     model.AliasConflict
	}{
		{
			name: "fresh mapping",
			proposed: model.MerchantAlias{
				DisplayName: "Swiggy", Category: "Food",
			},
			want: model.AliasConflict{
				Type:                model.ConflictNone,
				ProposedDisplayName: "Swiggy",
				ProposedCategory:    "Food",
			},
		},
		{
			name: "same mapping rewritten",
			existing: &model.MerchantAlias{
				CanonicalKey: "SWIGGY", DisplayName: "Swiggy", Category: "Food",
			},
			proposed: model.MerchantAlias{
				DisplayName: "Swiggy", Category: "Food",
			},
			want: model.AliasConflict{
				Type:                model.ConflictNone,
				ProposedDisplayName: "Swiggy",
				ProposedCategory:    "Food",
			},
		},
		{
			name: "existing alias differs",
			existing: &model.MerchantAlias{
				CanonicalKey: "SWIGGY", DisplayName: "Swiggy", Category: "Food",
			},
			proposed: model.MerchantAlias{
				DisplayName: "Swiggy Instamart", Category: "Groceries",
			},
			want: model.AliasConflict{
				Type:                model.ConflictOverwriteExisting,
				ExistingDisplayName: "Swiggy",
				ExistingCategory:    "Food",
				ProposedDisplayName: "Swiggy Instamart",
				ProposedCategory:    "Groceries",
			},
		},
		{
			name: "display name reused with same category",
			proposed: model.MerchantAlias{
				DisplayName: "Swiggy", Category: "Food",
			},
			others: []model.MerchantAlias{
				{CanonicalKey: "SWIGGY INSTAMART", DisplayName: "Swiggy", Category: "Food"},
				{CanonicalKey: "SWIGGY DINEOUT", DisplayName: "Swiggy", Category: "Food"},
			},
			want: model.AliasConflict{
				Type:                model.ConflictNone,
				ProposedDisplayName: "Swiggy",
				ProposedCategory:    "Food",
				AffectedMerchants:   []string{"SWIGGY DINEOUT", "SWIGGY INSTAMART"},
			},
		},
		{
			name: "display name reused across categories",
			proposed: model.MerchantAlias{
				DisplayName: "Amazon", Category: "Shopping",
			},
			others: []model.MerchantAlias{
				{CanonicalKey: "AMAZON PAY", DisplayName: "Amazon", Category: "Utilities"},
				{CanonicalKey: "AMAZON FRESH", DisplayName: "Amazon", Category: "Groceries"},
			},
			want: model.AliasConflict{
				Type:                model.ConflictCategoryMismatch,
				ExistingCategory:    "Groceries, Utilities",
				ProposedDisplayName: "Amazon",
				ProposedCategory:    "Shopping",
				AffectedMerchants:   []string{"AMAZON FRESH", "AMAZON PAY"},
			},
		},
		{
			name: "single other category differs from proposal",
			proposed: model.MerchantAlias{
				DisplayName: "Swiggy", Category: "Groceries",
			},
			others: []model.MerchantAlias{
				{CanonicalKey: "SWIGGY", DisplayName: "Swiggy", Category: "Food"},
			},
			want: model.AliasConflict{
				Type:                model.ConflictCategoryMismatch,
				ExistingCategory:    "Food",
				ProposedDisplayName: "Swiggy",
				ProposedCategory:    "Groceries",
				AffectedMerchants:   []string{"SWIGGY"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideConflict(tt.existing, tt.others, tt.proposed.DisplayName, tt.proposed.Category)
			assert.Equal(t, tt.want, got)
		})
	}
}
