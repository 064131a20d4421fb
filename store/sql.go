package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/logger"
	"github.com/yourusername/invoice-api/models"
	"gorm.io/gorm"
)

// Postgres unique_violation
const pgUniqueViolation = "23505"

// SQLStore is the relational backend. Every contract operation is exactly
// one stored routine call with bound parameters; the call boundary is the
// unit of atomicity. Case-insensitive invoice-number uniqueness is owned by
// the database's unique index on lower(invoice_number) (see
// scripts/postgres_functions.sql) and surfaces here as a unique violation.
type SQLStore struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ InvoiceStore = (*SQLStore)(nil)

func NewSQLStore(db *gorm.DB, log *logger.Logger) *SQLStore {
	return &SQLStore{db: db, log: log}
}

func (s *SQLStore) Insert(ctx context.Context, draft *models.InvoiceDraft) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).Raw(
		`SELECT * FROM invoice_insert(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.InvoiceNumber,
		draft.ClientName,
		draft.ClientEmail,
		draft.IssueDate,
		draft.DueDate,
		draft.Subtotal,
		draft.Tax,
		draft.Total,
		string(draft.Status),
	).Scan(&inv).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apierr.WithError(err).
				WithHintf("invoice number %s already exists", draft.InvoiceNumber).
				Mark(apierr.ErrConflict)
		}
		s.log.Errorw("invoice insert failed", "invoice_number", draft.InvoiceNumber, "error", err)
		return nil, apierr.WithError(err).
			WithHint("could not create invoice").
			Mark(apierr.ErrInternal)
	}
	inv.CreatedAt = inv.CreatedAt.UTC()
	return &inv, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	tx := s.db.WithContext(ctx).Raw(`SELECT * FROM invoice_get_by_id(?)`, id).Scan(&inv)
	if tx.Error != nil {
		s.log.Errorw("invoice lookup failed", "id", id, "error", tx.Error)
		return nil, apierr.WithError(tx.Error).
			WithHint("could not fetch invoice").
			Mark(apierr.ErrInternal)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	inv.CreatedAt = inv.CreatedAt.UTC()
	return &inv, nil
}

// likeEscaper neutralizes LIKE metacharacters so the routine's ILIKE filter
// matches them literally, keeping parity with the in-memory substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SQLStore) SearchByClient(ctx context.Context, namePart string) ([]*models.Invoice, error) {
	invoices := make([]*models.Invoice, 0)
	err := s.db.WithContext(ctx).Raw(`SELECT * FROM invoice_search_by_client(?)`, likeEscaper.Replace(namePart)).Scan(&invoices).Error
	if err != nil {
		s.log.Errorw("invoice search failed", "client", namePart, "error", err)
		return nil, apierr.WithError(err).
			WithHint("could not search invoices").
			Mark(apierr.ErrInternal)
	}
	for _, inv := range invoices {
		inv.CreatedAt = inv.CreatedAt.UTC()
	}
	return invoices, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id uint, status models.InvoiceStatus) (bool, error) {
	// The routine reports existence through its integer return code:
	// 0 means updated, anything else means no such invoice.
	var code int
	err := s.db.WithContext(ctx).Raw(`SELECT invoice_update_status(?, ?)`, id, string(status)).Scan(&code).Error
	if err != nil {
		s.log.Errorw("invoice status update failed", "id", id, "status", status, "error", err)
		return false, apierr.WithError(err).
			WithHint("could not update invoice status").
			Mark(apierr.ErrInternal)
	}
	return code == 0, nil
}
