package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/models"
)

func testDraft(number, client string, issued time.Time) *models.InvoiceDraft {
	return &models.InvoiceDraft{
		InvoiceNumber: number,
		ClientName:    client,
		ClientEmail:   "billing@client.test",
		IssueDate:     issued,
		DueDate:       issued.AddDate(0, 1, 0),
		Subtotal:      decimal.RequireFromString("100.00"),
		Tax:           decimal.RequireFromString("19.00"),
		Total:         decimal.RequireFromString("119.00"),
		Status:        models.StatusPending,
	}
}

func TestMemoryStoreInsertAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	draft := testDraft("INV-100", "Acme Corp", issued)
	inv, err := s.Insert(ctx, draft)
	require.NoError(t, err)

	assert.NotZero(t, inv.ID)
	assert.Equal(t, "INV-100", inv.InvoiceNumber)
	assert.Equal(t, "Acme Corp", inv.ClientName)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, inv.Tax.Equal(decimal.RequireFromString("19.00")))
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("119.00")))
	assert.Equal(t, models.StatusPending, inv.Status)
	assert.Equal(t, time.UTC, inv.CreatedAt.Location())
	assert.False(t, inv.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inv.ID, got.ID)
	assert.Equal(t, inv.CreatedAt, got.CreatedAt)
	assert.True(t, got.Total.Equal(inv.Total))
}

func TestMemoryStoreGetByIDAbsent(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.GetByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDuplicateNumber(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	issued := time.Now().UTC()

	_, err := s.Insert(ctx, testDraft("INV-200", "Acme Corp", issued))
	require.NoError(t, err)

	tests := []struct {
		name   string
		number string
	}{
		{name: "Exact Match", number: "INV-200"},
		{name: "Lower Case", number: "inv-200"},
		{name: "Mixed Case", number: "Inv-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(ctx, testDraft(tt.number, "Other Client", issued))
			assert.True(t, apierr.IsConflict(err))
		})
	}
}

func TestMemoryStoreConcurrentDistinctInserts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	issued := time.Now().UTC()

	const n = 50
	ids := make(chan uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := s.Insert(ctx, testDraft(fmt.Sprintf("INV-%03d", i), "Acme Corp", issued))
			if assert.NoError(t, err) {
				ids <- inv.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "identifier %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryStoreConcurrentSameNumber(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	issued := time.Now().UTC()

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate casing to exercise the case-insensitive check.
			number := "INV-DUP"
			if i%2 == 0 {
				number = "inv-dup"
			}
			_, err := s.Insert(ctx, testDraft(number, "Acme Corp", issued))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if apierr.IsConflict(err) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
}

func TestMemoryStoreSearchByClient(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Insert(ctx, testDraft("INV-301", "Acme Corp", base))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testDraft("INV-302", "ACME Holdings", base.AddDate(0, 2, 0)))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testDraft("INV-303", "Globex", base.AddDate(0, 1, 0)))
	require.NoError(t, err)

	t.Run("Case Insensitive Substring", func(t *testing.T) {
		results, err := s.SearchByClient(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, results, 2)
		// Most recent issue date first.
		assert.Equal(t, "INV-302", results[0].InvoiceNumber)
		assert.Equal(t, "INV-301", results[1].InvoiceNumber)
	})

	t.Run("No Matches", func(t *testing.T) {
		results, err := s.SearchByClient(ctx, "initech")
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	inv, err := s.Insert(ctx, testDraft("INV-400", "Acme Corp", time.Now().UTC()))
	require.NoError(t, err)

	t.Run("Existing Invoice", func(t *testing.T) {
		updated, err := s.UpdateStatus(ctx, inv.ID, models.StatusPaid)
		require.NoError(t, err)
		assert.True(t, updated)

		got, err := s.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPaid, got.Status)
		assert.Equal(t, inv.CreatedAt, got.CreatedAt)
	})

	t.Run("Missing Invoice", func(t *testing.T) {
		updated, err := s.UpdateStatus(ctx, 9999, models.StatusPaid)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestMemoryStoreHonorsCancellation(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Insert(ctx, testDraft("INV-500", "Acme Corp", time.Now().UTC()))
	assert.ErrorIs(t, err, context.Canceled)

	got, err := s.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, got, "cancelled insert must not leave a partial write")
}
