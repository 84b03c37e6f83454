package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/model"
)

// GetAlias retrieves an alias by canonical key, returning
// common.ErrNotFound when no alias exists.
func (s *SQLiteStorage) GetAlias(ctx context.Context, canonicalKey string) (*model.MerchantAlias, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return nil, err
	}

	var alias model.MerchantAlias
	err := s.db.QueryRowContext(ctx, `
		SELECT canonical_key, display_name, category, category_color, last_updated
		FROM merchant_aliases
		WHERE canonical_key = ?
	`, canonicalKey).Scan(
		&alias.CanonicalKey,
		&alias.DisplayName,
		&alias.Category,
		&alias.CategoryColor,
		&alias.LastUpdated,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alias: %w", err)
	}
	return &alias, nil
}

// SaveAlias inserts or updates an alias.
func (s *SQLiteStorage) SaveAlias(ctx context.Context, alias *model.MerchantAlias) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAlias(alias); err != nil {
		return err
	}

	if alias.LastUpdated.IsZero() {
		alias.LastUpdated = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_aliases (canonical_key, display_name, category, category_color, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(canonical_key) DO UPDATE SET
			display_name = excluded.display_name,
			category = excluded.category,
			category_color = excluded.category_color,
			last_updated = excluded.last_updated
	`, alias.CanonicalKey, alias.DisplayName, alias.Category, alias.CategoryColor, alias.LastUpdated)

	if err != nil {
		return fmt.Errorf("failed to save alias: %w", err)
	}
	return nil
}

// DeleteAlias deletes an alias by canonical key.
func (s *SQLiteStorage) DeleteAlias(ctx context.Context, canonicalKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM merchant_aliases WHERE canonical_key = ?
	`, canonicalKey)
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// GetAllAliases retrieves every stored alias ordered by canonical key.
func (s *SQLiteStorage) GetAllAliases(ctx context.Context) ([]model.MerchantAlias, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryAliases(ctx, `
		SELECT canonical_key, display_name, category, category_color, last_updated
		FROM merchant_aliases
		ORDER BY canonical_key
	`)
}

// GetAliasesByDisplayName retrieves every alias sharing a display name,
// used for grouping and conflict detection.
func (s *SQLiteStorage) GetAliasesByDisplayName(ctx context.Context, displayName string) ([]model.MerchantAlias, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(displayName, "displayName"); err != nil {
		return nil, err
	}
	return s.queryAliases(ctx, `
		SELECT canonical_key, display_name, category, category_color, last_updated
		FROM merchant_aliases
		WHERE display_name = ?
		ORDER BY canonical_key
	`, displayName)
}

// SetMerchantExcluded flags or unflags a merchant as excluded from scans.
func (s *SQLiteStorage) SetMerchantExcluded(ctx context.Context, canonicalKey string, excluded bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(canonicalKey, "canonicalKey"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE merchant_aliases SET excluded = ? WHERE canonical_key = ?
	`, excluded, canonicalKey)
	if err != nil {
		return fmt.Errorf("failed to update merchant exclusion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) queryAliases(ctx context.Context, query string, args ...any) ([]model.MerchantAlias, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var aliases []model.MerchantAlias
	for rows.Next() {
		var alias model.MerchantAlias
		err := rows.Scan(
			&alias.CanonicalKey,
			&alias.DisplayName,
			&alias.Category,
			&alias.CategoryColor,
			&alias.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, alias)
	}

	return aliases, rows.Err()
}
