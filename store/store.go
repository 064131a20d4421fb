package store

import (
	"context"

	"github.com/yourusername/invoice-api/models"
)

// InvoiceStore is the persistence contract for invoices. The service layer
// and everything above it depend only on this interface; which backend is
// active is decided once, at startup.
type InvoiceStore interface {
	// Insert assigns an identifier and a UTC creation timestamp, persists
	// the invoice and returns it. Fails with Conflict when another invoice
	// already uses the same invoice number, compared case-insensitively.
	// The uniqueness check and the insert are a single atomic step.
	Insert(ctx context.Context, draft *models.InvoiceDraft) (*models.Invoice, error)

	// GetByID returns (nil, nil) when no invoice has that identifier.
	// Absence is not an error at this layer.
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)

	// SearchByClient matches the client name case-insensitively by
	// substring and returns results ordered by issue date descending.
	// No matches yields an empty slice.
	SearchByClient(ctx context.Context, namePart string) ([]*models.Invoice, error)

	// UpdateStatus reports through the boolean whether an invoice with
	// that identifier existed and was updated. The status value is not
	// validated here.
	UpdateStatus(ctx context.Context, id uint, status models.InvoiceStatus) (bool, error)
}
