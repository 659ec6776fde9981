package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueMarker flips outstanding invoices due before a day to overdue
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

// OverdueInvoiceSweeper marks sent invoices whose due date has passed
type OverdueInvoiceSweeper struct {
	invoices OverdueMarker
	logger   *zap.Logger
	now      func() time.Time
}

// NewOverdueInvoiceSweeper creates the overdue sweep job
func NewOverdueInvoiceSweeper(invoices OverdueMarker, logger *zap.Logger) *OverdueInvoiceSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueInvoiceSweeper{
		invoices: invoices,
		logger:   logger,
		now:      time.Now,
	}
}

// Name implements Job
func (s *OverdueInvoiceSweeper) Name() string {
	return "overdue_invoice_sweep"
}

// Run implements Job. Invoices due strictly before today become overdue.
func (s *OverdueInvoiceSweeper) Run(ctx context.Context) error {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	n, err := s.invoices.MarkOverdue(ctx, today)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("Invoices marked overdue",
			zap.Int64("count", n),
			zap.Time("due_before", today),
		)
	}
	return nil
}
