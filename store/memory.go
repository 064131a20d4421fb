package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/models"
)

// MemoryStore is the in-process backend. A single mutex guards the whole
// insert sequence so the duplicate check, the identifier assignment and
// the write commit together; the lock is never held across a call to
// anything outside this struct.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   uint
	invoices map[uint]*models.Invoice
	numbers  map[string]uint // lower-cased invoice number -> id
}

var _ InvoiceStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		invoices: make(map[uint]*models.Invoice),
		numbers:  make(map[string]uint),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, draft *models.InvoiceDraft) (*models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.ToLower(draft.InvoiceNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.numbers[key]; exists {
		return nil, apierr.NewError("duplicate invoice number").
			WithHintf("invoice number %s already exists", draft.InvoiceNumber).
			Mark(apierr.ErrConflict)
	}

	s.nextID++
	inv := &models.Invoice{
		ID:            s.nextID,
		InvoiceNumber: draft.InvoiceNumber,
		ClientName:    draft.ClientName,
		ClientEmail:   draft.ClientEmail,
		IssueDate:     draft.IssueDate,
		DueDate:       draft.DueDate,
		Subtotal:      draft.Subtotal,
		Tax:           draft.Tax,
		Total:         draft.Total,
		Status:        draft.Status,
		CreatedAt:     time.Now().UTC(),
	}
	s.invoices[inv.ID] = inv
	s.numbers[key] = inv.ID

	out := *inv
	return &out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	out := *inv
	return &out, nil
}

func (s *MemoryStore) SearchByClient(ctx context.Context, namePart string) ([]*models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(namePart)

	s.mu.Lock()
	all := make([]*models.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out := *inv
		all = append(all, &out)
	}
	s.mu.Unlock()

	matches := lo.Filter(all, func(inv *models.Invoice, _ int) bool {
		return strings.Contains(strings.ToLower(inv.ClientName), needle)
	})
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].IssueDate.After(matches[j].IssueDate)
	})
	return matches, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id uint, status models.InvoiceStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return false, nil
	}
	inv.Status = status
	return true, nil
}
