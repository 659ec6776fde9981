// Package dashboard assembles the cross-module read models served under
// /api/dashboard.
package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/report"
	"github.com/erp/erpapp/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// recentPerSource is how many rows each module contributes to the feed
	recentPerSource = 5

	DefaultActivityLimit = 10
	MaxActivityLimit     = 100
	DefaultChartMonths   = 12
	MaxChartMonths       = 36
)

// Activity types and modules of the recent activity feed
const (
	ActivityLeadCreated    = "lead_created"
	ActivityOrderCreated   = "order_created"
	ActivityInvoiceCreated = "invoice_created"
)

// DashboardService serves the dashboard statistics, feed and charts
type DashboardService struct {
	repo    report.DashboardRepository
	logger  *zap.Logger
	printer *message.Printer
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo report.DashboardRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:    repo,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// Stats runs the per-module summaries concurrently. Any failing query fails
// the whole response.
func (s *DashboardService) Stats(ctx context.Context) (*StatsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "stats")
	defer span.End()

	periods := report.PeriodsAt(s.now())

	var (
		crmSum   report.CRMSummary
		invSum   report.InventorySummary
		accSum   report.AccountingSummary
		hrSum    report.HRSummary
		salesSum report.SalesSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		crmSum, err = s.repo.CRMSummary(gctx, periods)
		return err
	})
	g.Go(func() (err error) {
		invSum, err = s.repo.InventorySummary(gctx)
		return err
	})
	g.Go(func() (err error) {
		accSum, err = s.repo.AccountingSummary(gctx, periods)
		return err
	})
	g.Go(func() (err error) {
		hrSum, err = s.repo.HRSummary(gctx)
		return err
	})
	g.Go(func() (err error) {
		salesSum, err = s.repo.SalesSummary(gctx, periods)
		return err
	})
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Dashboard stats query failed", zap.Error(err))
		return nil, err
	}

	return &StatsResponse{
		CRM: CRMStats{
			TotalLeads:        crmSum.TotalLeads,
			NewLeadsThisMonth: crmSum.NewLeadsThisMonth,
			NewLeadsLastMonth: crmSum.NewLeadsLastMonth,
			TotalContacts:     crmSum.TotalContacts,
			TotalDeals:        crmSum.TotalDeals,
			TotalDealValue:    crmSum.TotalDealValue,
		},
		Inventory: InventoryStats{
			TotalProducts:    invSum.TotalProducts,
			LowStockProducts: invSum.LowStockProducts,
		},
		Accounting: AccountingStats{
			TotalCustomers:    accSum.TotalCustomers,
			TotalInvoices:     accSum.TotalInvoices,
			TotalRevenue:      accSum.TotalRevenue,
			ThisMonthRevenue:  accSum.ThisMonthRevenue,
			LastMonthRevenue:  accSum.LastMonthRevenue,
			OutstandingAmount: accSum.OutstandingAmount,
		},
		HR: HRStats{
			TotalEmployees:       hrSum.TotalEmployees,
			PendingLeaveRequests: hrSum.PendingLeaveRequests,
		},
		Sales: SalesStats{
			TotalOrders:     salesSum.TotalOrders,
			ThisMonthOrders: salesSum.ThisMonthOrders,
			LastMonthOrders: salesSum.LastMonthOrders,
		},
	}, nil
}

// RecentActivities merges the newest leads, orders and invoices into one
// feed ordered by time, newest first.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]ActivityResponse, error) {
	limit = clamp(limit, 1, MaxActivityLimit)

	leads, err := s.repo.RecentLeads(ctx, recentPerSource)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.RecentOrders(ctx, recentPerSource)
	if err != nil {
		return nil, err
	}
	invoices, err := s.repo.RecentInvoices(ctx, recentPerSource)
	if err != nil {
		return nil, err
	}

	feed := make([]ActivityResponse, 0, len(leads)+len(orders)+len(invoices))
	for _, l := range leads {
		company := strings.TrimSpace(l.Company)
		if company == "" {
			company = "Unknown Company"
		}
		feed = append(feed, ActivityResponse{
			Type:        ActivityLeadCreated,
			Title:       strings.TrimSpace("New lead: " + l.FirstName + " " + l.LastName),
			Description: "From " + company,
			Timestamp:   l.CreatedAt,
			Module:      "CRM",
		})
	}
	for _, o := range orders {
		feed = append(feed, ActivityResponse{
			Type:        ActivityOrderCreated,
			Title:       "New order: " + o.Number,
			Description: s.amount(o.TotalAmount),
			Timestamp:   o.CreatedAt,
			Module:      "Sales",
		})
	}
	for _, inv := range invoices {
		feed = append(feed, ActivityResponse{
			Type:        ActivityInvoiceCreated,
			Title:       "New invoice: " + inv.Number,
			Description: s.amount(inv.TotalAmount),
			Timestamp:   inv.CreatedAt,
			Module:      "Accounting",
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

func (s *DashboardService) amount(v decimal.Decimal) string {
	return s.printer.Sprintf("Amount: $%.2f", v.InexactFloat64())
}

// RevenueChart sums paid invoices per calendar month over the trailing
// window ending with the current month. Months without revenue are zero.
func (s *DashboardService) RevenueChart(ctx context.Context, months int) (*ChartResponse, error) {
	months = clamp(months, 1, MaxChartMonths)

	now := s.now()
	start := report.MonthStart(now).AddDate(0, -(months - 1), 0)
	end := report.MonthStart(now).AddDate(0, 1, 0)

	points, err := s.repo.PaidInvoices(ctx, report.Window{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	labels := make([]string, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		label := start.AddDate(0, i, 0).Format("2006-01")
		labels[i] = label
		index[label] = i
	}
	data := make([]decimal.Decimal, months)
	for i := range data {
		data[i] = decimal.Zero
	}
	for _, p := range points {
		if i, ok := index[p.IssueDate.UTC().Format("2006-01")]; ok {
			data[i] = data[i].Add(p.Amount)
		}
	}
	for i := range data {
		data[i] = data[i].Round(2)
	}
	return &ChartResponse{Labels: labels, Data: data}, nil
}

// SalesPipeline returns deal counts and values per stage in pipeline order
func (s *DashboardService) SalesPipeline(ctx context.Context) (*PipelineResponse, error) {
	totals, err := s.repo.DealsByStage(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return crm.StageOrder(crm.DealStage(totals[i].Stage)) < crm.StageOrder(crm.DealStage(totals[j].Stage))
	})

	resp := &PipelineResponse{
		Stages: make([]string, 0, len(totals)),
		Counts: make([]int64, 0, len(totals)),
		Values: make([]decimal.Decimal, 0, len(totals)),
	}
	for _, t := range totals {
		resp.Stages = append(resp.Stages, t.Stage)
		resp.Counts = append(resp.Counts, t.Count)
		resp.Values = append(resp.Values, t.Value.Round(2))
	}
	return resp, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
