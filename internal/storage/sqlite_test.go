package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTransaction(id string) *model.ParsedTransaction {
	return &model.ParsedTransaction{
		ID:         id,
		Date:       time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC),
		Merchant:   "Swiggy*Order123",
		BankName:   "HDFC Bank",
		RawText:    "Sent Rs.500.00 to SWIGGY*ORDER on 01-01-24. Ref 123456789",
		Type:       model.TypeDebit,
		Amount:     500,
		Confidence: 0.9,
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)

	// A second run over an up-to-date schema is a no-op.
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAndGetTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	saved := testTransaction("txn-1")
	require.NoError(t, store.SaveTransaction(ctx, saved))

	got, err := store.GetTransactionByID(ctx, "txn-1")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.Merchant, got.Merchant)
	assert.Equal(t, saved.BankName, got.BankName)
	assert.Equal(t, saved.RawText, got.RawText)
	assert.Equal(t, saved.Type, got.Type)
	assert.InDelta(t, saved.Amount, got.Amount, 0.001)
	assert.InDelta(t, saved.Confidence, got.Confidence, 0.001)
	assert.True(t, saved.Date.Equal(got.Date), "want %v, got %v", saved.Date, got.Date)
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetTransactionByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveTransaction_DuplicateID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransaction(ctx, testTransaction("txn-1")))
	assert.Error(t, store.SaveTransaction(ctx, testTransaction("txn-1")))
}

func TestSaveTransaction_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		mutate func(txn *model.ParsedTransaction)
		name   string
	}{
		{
			name:   "missing id",
			mutate: func(txn *model.ParsedTransaction) { txn.ID = "" },
		},
		{
			name:   "zero date",
			mutate: func(txn *model.ParsedTransaction) { txn.Date = time.Time{} },
		},
		{
			name:   "blank merchant",
			mutate: func(txn *model.ParsedTransaction) { txn.Merchant = "   " },
		},
		{
			name:   "amount below one",
			mutate: func(txn *model.ParsedTransaction) { txn.Amount = 0.5 },
		},
		{
			name:   "confidence above one",
			mutate: func(txn *model.ParsedTransaction) { txn.Confidence = 1.5 },
		},
		{
			name:   "negative confidence",
			mutate: func(txn *model.ParsedTransaction) { txn.Confidence = -0.1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := testTransaction("txn-invalid")
			tt.mutate(txn)
			assert.ErrorIs(t, store.SaveTransaction(ctx, txn), ErrInvalidTransaction)
		})
	}

	t.Run("nil transaction", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveTransaction(ctx, nil), ErrNilParameter)
	})
}

func TestFindSimilarTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	saved := testTransaction("txn-1")
	require.NoError(t, store.SaveTransaction(ctx, saved))

	t.Run("matches across merchant variants", func(t *testing.T) {
		// A different order-id suffix normalizes to the same canonical key.
		found, err := store.FindSimilarTransaction(ctx, "SWIGGY*ORDER999", 500, saved.Date)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "txn-1", found.ID)
	})

	t.Run("same day different clock time", func(t *testing.T) {
		evening := time.Date(2024, time.January, 1, 21, 0, 0, 0, time.UTC)
		found, err := store.FindSimilarTransaction(ctx, "Swiggy*Order123", 500, evening)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("different day", func(t *testing.T) {
		nextDay := saved.Date.AddDate(0, 0, 1)
		found, err := store.FindSimilarTransaction(ctx, "Swiggy*Order123", 500, nextDay)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("different amount", func(t *testing.T) {
		found, err := store.FindSimilarTransaction(ctx, "Swiggy*Order123", 501, saved.Date)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("different merchant", func(t *testing.T) {
		found, err := store.FindSimilarTransaction(ctx, "ZOMATO", 500, saved.Date)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGetTransactionCount(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	count, err := store.GetTransactionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.SaveTransaction(ctx, testTransaction("txn-1")))
	require.NoError(t, store.SaveTransaction(ctx, testTransaction("txn-2")))

	count, err = store.GetTransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func testAlias(key, displayName, category string) *model.MerchantAlias {
	return &model.MerchantAlias{
		CanonicalKey:  key,
		DisplayName:   displayName,
		Category:      category,
		CategoryColor: "#E74C3C",
	}
}

func TestAliasCRUD(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAlias(ctx, testAlias("SWIGGY", "Swiggy", "Food")))

	got, err := store.GetAlias(ctx, "SWIGGY")
	require.NoError(t, err)
	assert.Equal(t, "Swiggy", got.DisplayName)
	assert.Equal(t, "Food", got.Category)
	assert.False(t, got.LastUpdated.IsZero())

	// Upsert replaces the mapping in place.
	require.NoError(t, store.SaveAlias(ctx, testAlias("SWIGGY", "Swiggy Orders", "Food")))
	got, err = store.GetAlias(ctx, "SWIGGY")
	require.NoError(t, err)
	assert.Equal(t, "Swiggy Orders", got.DisplayName)

	require.NoError(t, store.DeleteAlias(ctx, "SWIGGY"))
	_, err = store.GetAlias(ctx, "SWIGGY")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteAlias_NotFound(t *testing.T) {
	store := newTestStorage(t)

	assert.ErrorIs(t, store.DeleteAlias(context.Background(), "MISSING"), common.ErrNotFound)
}

func TestSaveAlias_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveAlias(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, store.SaveAlias(ctx, testAlias("", "Swiggy", "Food")), ErrInvalidAlias)
	assert.ErrorIs(t, store.SaveAlias(ctx, testAlias("SWIGGY", " ", "Food")), ErrInvalidAlias)
	assert.ErrorIs(t, store.SaveAlias(ctx, testAlias("SWIGGY", "Swiggy", "")), ErrInvalidAlias)
}

func TestGetAllAliases(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAlias(ctx, testAlias("ZOMATO", "Zomato", "Food")))
	require.NoError(t, store.SaveAlias(ctx, testAlias("AMAZON", "Amazon", "Shopping")))

	all, err := store.GetAllAliases(ctx)
	require.NoError(t, err)

	require.Len(t, all, 2)
	assert.Equal(t, "AMAZON", all[0].CanonicalKey, "ordered by canonical key")
	assert.Equal(t, "ZOMATO", all[1].CanonicalKey)
}

func TestGetAliasesByDisplayName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAlias(ctx, testAlias("SWIGGY", "Swiggy", "Food")))
	require.NoError(t, store.SaveAlias(ctx, testAlias("SWIGGY INSTAMART", "Swiggy", "Food")))
	require.NoError(t, store.SaveAlias(ctx, testAlias("AMAZON", "Amazon", "Shopping")))

	matches, err := store.GetAliasesByDisplayName(ctx, "Swiggy")
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "SWIGGY", matches[0].CanonicalKey)
	assert.Equal(t, "SWIGGY INSTAMART", matches[1].CanonicalKey)
}

func TestSetMerchantExcluded(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAlias(ctx, testAlias("SWIGGY", "Swiggy", "Food")))

	assert.NoError(t, store.SetMerchantExcluded(ctx, "SWIGGY", true))
	assert.NoError(t, store.SetMerchantExcluded(ctx, "SWIGGY", false))
	assert.ErrorIs(t, store.SetMerchantExcluded(ctx, "MISSING", true), common.ErrNotFound)
}
