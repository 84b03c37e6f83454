package merchant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/model"
	"github.com/paisaflow/paisaflow/internal/service"
)

// Resolution is the display identity resolved for a canonical merchant key.
type Resolution struct {
	DisplayName   string
	Category      string
	CategoryColor string
	FromAlias     bool
}

// Registry stores and serves user-defined merchant aliases. Reads are
// served from an in-memory cache over the backing store; writes are
// serialized and the cache is updated strictly after the durable write, so
// a read following a successful write always observes the new value.
type Registry struct {
	storage service.Storage
	cache   map[string]*model.MerchantAlias
	cacheMu sync.RWMutex
	writeMu sync.Mutex
}

// NewRegistry creates a registry over the given storage.
func NewRegistry(storage service.Storage) *Registry {
	return &Registry{
		storage: storage,
		cache:   make(map[string]*model.MerchantAlias),
	}
}

// Resolve returns the display identity for a canonical key, falling back to
// the raw merchant text and the rule-based default category when no alias
// exists.
func (r *Registry) Resolve(ctx context.Context, canonicalKey, rawMerchant string) (Resolution, error) {
	r.cacheMu.RLock()
	alias, cached := r.cache[canonicalKey]
	r.cacheMu.RUnlock()

	if !cached {
		stored, err := r.storage.GetAlias(ctx, canonicalKey)
		switch {
		case errors.Is(err, common.ErrNotFound):
			// No alias; fall through to defaults.
		case err != nil:
			return Resolution{}, fmt.Errorf("failed to resolve alias for %s: %w", canonicalKey, err)
		default:
			r.cacheMu.Lock()
			r.cache[canonicalKey] = stored
			r.cacheMu.Unlock()
			alias = stored
		}
	}

	if alias != nil {
		return Resolution{
			DisplayName:   alias.DisplayName,
			Category:      alias.Category,
			CategoryColor: alias.CategoryColor,
			FromAlias:     true,
		}, nil
	}

	category, color := DefaultCategory(canonicalKey)
	return Resolution{
		DisplayName:   rawMerchant,
		Category:      category,
		CategoryColor: color,
	}, nil
}

// Set validates and writes an alias. Callers are responsible for running
// CheckConflict and resolving any conflict before committing.
func (r *Registry) Set(ctx context.Context, canonicalKey, displayName, category, categoryColor string) error {
	if strings.TrimSpace(canonicalKey) == "" ||
		strings.TrimSpace(displayName) == "" ||
		strings.TrimSpace(category) == "" ||
		strings.TrimSpace(categoryColor) == "" {
		return common.ErrBlankAliasField
	}

	alias := &model.MerchantAlias{
		CanonicalKey:  canonicalKey,
		DisplayName:   strings.TrimSpace(displayName),
		Category:      strings.TrimSpace(category),
		CategoryColor: strings.TrimSpace(categoryColor),
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.storage.SaveAlias(ctx, alias); err != nil {
		return fmt.Errorf("failed to save alias for %s: %w", canonicalKey, err)
	}

	// Cache update ordered strictly after the durable write.
	r.cacheMu.Lock()
	r.cache[canonicalKey] = alias
	r.cacheMu.Unlock()

	return nil
}

// Remove deletes the alias for a canonical key.
func (r *Registry) Remove(ctx context.Context, canonicalKey string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.storage.DeleteAlias(ctx, canonicalKey); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, canonicalKey)
	r.cacheMu.Unlock()

	return nil
}

// AllAliases returns every stored alias keyed by canonical key.
func (r *Registry) AllAliases(ctx context.Context) (map[string]model.MerchantAlias, error) {
	aliases, err := r.storage.GetAllAliases(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]model.MerchantAlias, len(aliases))
	for _, alias := range aliases {
		result[alias.CanonicalKey] = alias
	}
	return result, nil
}

// CheckConflict evaluates how a proposed mapping interacts with the current
// registry state. Reads go to the backing store directly so the answer
// reflects durable state.
func (r *Registry) CheckConflict(ctx context.Context, canonicalKey, proposedDisplayName, proposedCategory string) (model.AliasConflict, error) {
	existing, err := r.storage.GetAlias(ctx, canonicalKey)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return model.AliasConflict{}, fmt.Errorf("failed to check alias for %s: %w", canonicalKey, err)
	}

	sameName, err := r.storage.GetAliasesByDisplayName(ctx, proposedDisplayName)
	if err != nil {
		return model.AliasConflict{}, fmt.Errorf("failed to look up display name %q: %w", proposedDisplayName, err)
	}

	// Exclude the key being written; reusing your own display name is not
	// a conflict with yourself.
	others := sameName[:0]
	for _, alias := range sameName {
		if alias.CanonicalKey != canonicalKey {
			others = append(others, alias)
		}
	}

	return decideConflict(existing, others, proposedDisplayName, proposedCategory), nil
}
