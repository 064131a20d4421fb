package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/invoice-api/apierr"
)

// InvoiceStatus is the closed set of states an invoice can be in.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "Pending"
	StatusPaid    InvoiceStatus = "Paid"
	StatusVoid    InvoiceStatus = "Void"
)

// Validate rejects anything outside the fixed enumeration.
func (s InvoiceStatus) Validate() error {
	switch s {
	case StatusPending, StatusPaid, StatusVoid:
		return nil
	}
	return apierr.NewError("invalid invoice status").
		WithHintf("status %q is not valid: must be one of Pending, Paid or Void", string(s)).
		Mark(apierr.ErrBadRequest)
}

type Invoice struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"` // assigned by the store, always UTC
}

// MarshalJSON renders the amounts with exactly two decimal places, matching
// the NUMERIC(18,2) columns, so "100.00" does not come back as "100".
func (i Invoice) MarshalJSON() ([]byte, error) {
	type alias Invoice
	return json.Marshal(struct {
		alias
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}{
		alias:    alias(i),
		Subtotal: i.Subtotal.StringFixed(2),
		Tax:      i.Tax.StringFixed(2),
		Total:    i.Total.StringFixed(2),
	})
}

// InvoiceDraft carries the caller-supplied fields of an invoice before the
// store assigns its identifier and creation timestamp.
type InvoiceDraft struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	ClientName    string          `json:"client_name" binding:"required"`
	ClientEmail   string          `json:"client_email" binding:"required,email"`
	IssueDate     time.Time       `json:"issue_date" binding:"required"`
	DueDate       time.Time       `json:"due_date" binding:"required"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status" binding:"required"`
}

// Validate enforces the domain invariants the binding tags cannot express.
// Violations are collected so the caller sees every problem at once.
func (d *InvoiceDraft) Validate() error {
	var details []string

	if strings.ContainsAny(d.ClientName, "0123456789") {
		details = append(details, "client_name must not contain digits")
	}
	if d.Subtotal.IsNegative() {
		details = append(details, "subtotal must not be negative")
	}
	if d.Tax.IsNegative() {
		details = append(details, "tax must not be negative")
	}
	if !d.Total.IsPositive() {
		details = append(details, "total must be greater than zero")
	}
	if !d.DueDate.After(d.IssueDate) {
		details = append(details, "due_date must be after issue_date")
	}
	if err := d.Status.Validate(); err != nil {
		details = append(details, apierr.DisplayMessage(err))
	}

	if len(details) > 0 {
		return apierr.NewError("invoice draft failed validation").
			WithHint("invalid invoice data").
			WithDetails(details).
			Mark(apierr.ErrBadRequest)
	}
	return nil
}
