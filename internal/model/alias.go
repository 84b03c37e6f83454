package model

import "time"

// MerchantAlias is a user-defined override mapping a canonical merchant key
// to a display name, category and category color.
type MerchantAlias struct {
	LastUpdated   time.Time
	CanonicalKey  string
	DisplayName   string
	Category      string
	CategoryColor string
}

// ConflictType classifies the outcome of proposing a new alias mapping.
type ConflictType string

const (
	// ConflictNone indicates the proposal can be committed as-is.
	ConflictNone ConflictType = "NONE"
	// ConflictOverwriteExisting indicates the key already has a different alias.
	ConflictOverwriteExisting ConflictType = "OVERWRITE_EXISTING"
	// ConflictDisplayNameExists is reserved for callers that require
	// confirmation on any display-name reuse. The default conflict check
	// never returns it; same-category reuse resolves to ConflictNone.
	ConflictDisplayNameExists ConflictType = "DISPLAY_NAME_EXISTS"
	// ConflictCategoryMismatch indicates the proposed display name is already
	// used under one or more different categories.
	ConflictCategoryMismatch ConflictType = "CATEGORY_MISMATCH"
)

// AliasConflict describes how a proposed alias mapping interacts with the
// existing registry state. Computed on demand, never persisted.
type AliasConflict struct {
	Type                ConflictType
	ExistingDisplayName string
	ExistingCategory    string
	ProposedDisplayName string
	ProposedCategory    string
	AffectedMerchants   []string
}
