package report

import "context"

// DashboardRepository runs the read-only aggregate queries of the dashboard.
// Empty tables yield zero values, never errors.
type DashboardRepository interface {
	CRMSummary(ctx context.Context, periods Periods) (CRMSummary, error)
	InventorySummary(ctx context.Context) (InventorySummary, error)
	AccountingSummary(ctx context.Context, periods Periods) (AccountingSummary, error)
	HRSummary(ctx context.Context) (HRSummary, error)
	SalesSummary(ctx context.Context, periods Periods) (SalesSummary, error)

	// Recent* return the newest n rows by creation time
	RecentLeads(ctx context.Context, n int) ([]RecentLead, error)
	RecentOrders(ctx context.Context, n int) ([]RecentDocument, error)
	RecentInvoices(ctx context.Context, n int) ([]RecentDocument, error)

	// PaidInvoices returns paid invoices issued inside the window
	PaidInvoices(ctx context.Context, window Window) ([]RevenuePoint, error)

	// DealsByStage groups every deal by stage
	DealsByStage(ctx context.Context) ([]StageTotal, error)

	EntityCounts(ctx context.Context) (EntityCounts, error)
}
