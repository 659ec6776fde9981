package sales

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// QuoteStatus is the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid reports whether s is a known quote status
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// Quote is a priced offer to a customer
type Quote struct {
	shared.BaseEntity
	QuoteNumber string
	CustomerID  uint
	QuoteDate   time.Time
	ValidUntil  time.Time
	Totals
	Status    QuoteStatus
	Notes     string
	Items     []LineItem
	CreatedBy *uint
}

// QuoteDetails holds the fields accepted when creating a quote
type QuoteDetails struct {
	QuoteNumber string
	CustomerID  uint
	QuoteDate   time.Time
	ValidUntil  time.Time
	Totals      Totals
	Status      QuoteStatus
	Notes       string
	Items       []LineItem
}

// NewQuote creates a quote. Totals come from the items when any are given.
func NewQuote(d QuoteDetails, createdBy *uint) (*Quote, error) {
	number := strings.TrimSpace(d.QuoteNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote number is required")
	}
	if d.CustomerID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote customer is required")
	}
	if d.QuoteDate.IsZero() {
		d.QuoteDate = time.Now().UTC()
	}
	if d.ValidUntil.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Valid until date is required")
	}
	if d.ValidUntil.Before(d.QuoteDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Valid until cannot be before quote date")
	}
	if d.Status == "" {
		d.Status = QuoteStatusDraft
	}
	if !d.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid quote status")
	}
	totals, err := resolveTotals(d.Items, d.Totals)
	if err != nil {
		return nil, err
	}
	return &Quote{
		BaseEntity:  shared.NewBaseEntity(),
		QuoteNumber: number,
		CustomerID:  d.CustomerID,
		QuoteDate:   d.QuoteDate,
		ValidUntil:  d.ValidUntil,
		Totals:      totals,
		Status:      d.Status,
		Notes:       d.Notes,
		Items:       d.Items,
		CreatedBy:   createdBy,
	}, nil
}
