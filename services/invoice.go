package services

import (
	"context"
	"strings"

	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/logger"
	"github.com/yourusername/invoice-api/models"
	"github.com/yourusername/invoice-api/store"
)

// InvoiceService orchestrates store calls and enforces the cross-cutting
// domain rules: draft validity, status legality and existence checks.
// Store failures propagate unchanged; nothing here retries.
type InvoiceService struct {
	store store.InvoiceStore
	log   *logger.Logger
}

func NewInvoiceService(st store.InvoiceStore, log *logger.Logger) *InvoiceService {
	return &InvoiceService{store: st, log: log}
}

func (s *InvoiceService) Create(ctx context.Context, draft *models.InvoiceDraft) (*models.Invoice, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.store.Insert(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.log.Infow("invoice created", "id", inv.ID, "invoice_number", inv.InvoiceNumber)
	return inv, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apierr.NewError("invoice lookup miss").
			WithHintf("invoice with id %d not found", id).
			Mark(apierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InvoiceService) SearchByClient(ctx context.Context, name string) ([]*models.Invoice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.NewError("blank client filter").
			WithHint("client parameter is required").
			Mark(apierr.ErrBadRequest)
	}
	return s.store.SearchByClient(ctx, name)
}

// UpdateStatus validates the target status before touching the store, then
// re-fetches the record: the relational backend reports success only as a
// return code, so the update call itself never yields the updated row.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uint, status models.InvoiceStatus) (*models.Invoice, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apierr.NewError("invoice lookup miss").
			WithHintf("invoice with id %d not found", id).
			Mark(apierr.ErrNotFound)
	}

	s.log.Infow("invoice status updated", "id", id, "status", status)
	return s.GetByID(ctx, id)
}
