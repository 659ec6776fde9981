package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/hr"
	"github.com/erp/erpapp/internal/domain/report"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository implements report.DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) count(ctx context.Context, model interface{}, where scope) (int64, error) {
	if where == nil {
		where = noScope
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Scopes(where).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormDashboardRepository) sum(ctx context.Context, model interface{}, col string, where scope) (decimal.Decimal, error) {
	if where == nil {
		where = noScope
	}
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).Model(model).Scopes(where).Select("SUM(" + col + ")").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func between(col string, w report.Window) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col+" >= ? AND "+col+" < ?", w.Start, w.End)
	}
}

// CRMSummary counts leads, contacts and deals
func (r *GormDashboardRepository) CRMSummary(ctx context.Context, periods report.Periods) (report.CRMSummary, error) {
	var (
		s   report.CRMSummary
		err error
	)
	if s.TotalLeads, err = r.count(ctx, &models.LeadModel{}, nil); err != nil {
		return s, fmt.Errorf("count leads: %w", err)
	}
	if s.NewLeadsThisMonth, err = r.count(ctx, &models.LeadModel{}, between("created_at", periods.ThisMonth)); err != nil {
		return s, fmt.Errorf("count leads this month: %w", err)
	}
	if s.NewLeadsLastMonth, err = r.count(ctx, &models.LeadModel{}, between("created_at", periods.LastMonth)); err != nil {
		return s, fmt.Errorf("count leads last month: %w", err)
	}
	if s.TotalContacts, err = r.count(ctx, &models.ContactModel{}, nil); err != nil {
		return s, fmt.Errorf("count contacts: %w", err)
	}
	if s.TotalDeals, err = r.count(ctx, &models.DealModel{}, nil); err != nil {
		return s, fmt.Errorf("count deals: %w", err)
	}
	if s.TotalDealValue, err = r.sum(ctx, &models.DealModel{}, "amount", nil); err != nil {
		return s, fmt.Errorf("sum deal value: %w", err)
	}
	return s, nil
}

// InventorySummary counts active products and every tracked product at or
// below its reorder level
func (r *GormDashboardRepository) InventorySummary(ctx context.Context) (report.InventorySummary, error) {
	var (
		s   report.InventorySummary
		err error
	)
	active := func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }
	if s.TotalProducts, err = r.count(ctx, &models.ProductModel{}, active); err != nil {
		return s, fmt.Errorf("count products: %w", err)
	}
	lowStock := func(db *gorm.DB) *gorm.DB {
		return db.Where("track_inventory = ? AND current_stock <= reorder_level", true)
	}
	if s.LowStockProducts, err = r.count(ctx, &models.ProductModel{}, lowStock); err != nil {
		return s, fmt.Errorf("count low stock products: %w", err)
	}
	return s, nil
}

// AccountingSummary counts customers and invoices and sums revenue
func (r *GormDashboardRepository) AccountingSummary(ctx context.Context, periods report.Periods) (report.AccountingSummary, error) {
	var (
		s   report.AccountingSummary
		err error
	)
	active := func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }
	if s.TotalCustomers, err = r.count(ctx, &models.CustomerModel{}, active); err != nil {
		return s, fmt.Errorf("count customers: %w", err)
	}
	if s.TotalInvoices, err = r.count(ctx, &models.InvoiceModel{}, nil); err != nil {
		return s, fmt.Errorf("count invoices: %w", err)
	}

	paid := func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", accounting.InvoiceStatusPaid) }
	if s.TotalRevenue, err = r.sum(ctx, &models.InvoiceModel{}, "total_amount", paid); err != nil {
		return s, fmt.Errorf("sum revenue: %w", err)
	}
	if s.ThisMonthRevenue, err = r.sum(ctx, &models.InvoiceModel{}, "total_amount", func(db *gorm.DB) *gorm.DB {
		return between("issue_date", periods.ThisMonth)(paid(db))
	}); err != nil {
		return s, fmt.Errorf("sum revenue this month: %w", err)
	}
	if s.LastMonthRevenue, err = r.sum(ctx, &models.InvoiceModel{}, "total_amount", func(db *gorm.DB) *gorm.DB {
		return between("issue_date", periods.LastMonth)(paid(db))
	}); err != nil {
		return s, fmt.Errorf("sum revenue last month: %w", err)
	}
	outstanding := func(db *gorm.DB) *gorm.DB { return db.Where("status IN ?", accounting.OutstandingStatuses) }
	if s.OutstandingAmount, err = r.sum(ctx, &models.InvoiceModel{}, "balance_due", outstanding); err != nil {
		return s, fmt.Errorf("sum outstanding: %w", err)
	}
	return s, nil
}

// HRSummary counts active employees and pending leave requests
func (r *GormDashboardRepository) HRSummary(ctx context.Context) (report.HRSummary, error) {
	var (
		s   report.HRSummary
		err error
	)
	active := func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", hr.EmploymentStatusActive) }
	if s.TotalEmployees, err = r.count(ctx, &models.EmployeeModel{}, active); err != nil {
		return s, fmt.Errorf("count employees: %w", err)
	}
	pending := func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", hr.LeaveStatusPending) }
	if s.PendingLeaveRequests, err = r.count(ctx, &models.LeaveRequestModel{}, pending); err != nil {
		return s, fmt.Errorf("count pending leave requests: %w", err)
	}
	return s, nil
}

// SalesSummary counts sales orders by order date
func (r *GormDashboardRepository) SalesSummary(ctx context.Context, periods report.Periods) (report.SalesSummary, error) {
	var (
		s   report.SalesSummary
		err error
	)
	if s.TotalOrders, err = r.count(ctx, &models.SalesOrderModel{}, nil); err != nil {
		return s, fmt.Errorf("count orders: %w", err)
	}
	if s.ThisMonthOrders, err = r.count(ctx, &models.SalesOrderModel{}, between("order_date", periods.ThisMonth)); err != nil {
		return s, fmt.Errorf("count orders this month: %w", err)
	}
	if s.LastMonthOrders, err = r.count(ctx, &models.SalesOrderModel{}, between("order_date", periods.LastMonth)); err != nil {
		return s, fmt.Errorf("count orders last month: %w", err)
	}
	return s, nil
}

// RecentLeads returns the newest n leads
func (r *GormDashboardRepository) RecentLeads(ctx context.Context, n int) ([]report.RecentLead, error) {
	var rows []models.LeadModel
	if err := r.db.WithContext(ctx).
		Select("id", "first_name", "last_name", "company", "created_at").
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.RecentLead, 0, len(rows))
	for _, m := range rows {
		out = append(out, report.RecentLead{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Company:   m.Company,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

type documentRow struct {
	ID          uint
	Number      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

func (r *GormDashboardRepository) recentDocuments(ctx context.Context, model interface{}, numberCol string, n int) ([]report.RecentDocument, error) {
	var rows []documentRow
	if err := r.db.WithContext(ctx).
		Model(model).
		Select("id, " + numberCol + " AS number, total_amount, created_at").
		Order("created_at DESC, id DESC").
		Limit(n).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.RecentDocument, 0, len(rows))
	for _, d := range rows {
		out = append(out, report.RecentDocument(d))
	}
	return out, nil
}

// RecentOrders returns the newest n sales orders
func (r *GormDashboardRepository) RecentOrders(ctx context.Context, n int) ([]report.RecentDocument, error) {
	return r.recentDocuments(ctx, &models.SalesOrderModel{}, "order_number", n)
}

// RecentInvoices returns the newest n invoices
func (r *GormDashboardRepository) RecentInvoices(ctx context.Context, n int) ([]report.RecentDocument, error) {
	return r.recentDocuments(ctx, &models.InvoiceModel{}, "invoice_number", n)
}

// PaidInvoices returns the issue date and total of paid invoices issued in
// the window. Grouping by month happens in the caller so that the query is
// portable across dialects.
func (r *GormDashboardRepository) PaidInvoices(ctx context.Context, window report.Window) ([]report.RevenuePoint, error) {
	var rows []struct {
		IssueDate   time.Time
		TotalAmount decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("issue_date, total_amount").
		Where("status = ?", accounting.InvoiceStatusPaid).
		Scopes(between("issue_date", window)).
		Order("issue_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.RevenuePoint{IssueDate: row.IssueDate, Amount: row.TotalAmount})
	}
	return out, nil
}

// DealsByStage groups deals by stage
func (r *GormDashboardRepository) DealsByStage(ctx context.Context) ([]report.StageTotal, error) {
	var rows []struct {
		Stage string
		Count int64
		Value decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DealModel{}).
		Select("stage, COUNT(id) AS count, SUM(amount) AS value").
		Group("stage").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.StageTotal, 0, len(rows))
	for _, row := range rows {
		value := decimal.Zero
		if row.Value.Valid {
			value = row.Value.Decimal
		}
		out = append(out, report.StageTotal{Stage: row.Stage, Count: row.Count, Value: value})
	}
	return out, nil
}

// EntityCounts counts rows in the main tables
func (r *GormDashboardRepository) EntityCounts(ctx context.Context) (report.EntityCounts, error) {
	var c report.EntityCounts
	targets := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.UserModel{}, &c.Users},
		{&models.LeadModel{}, &c.Leads},
		{&models.ContactModel{}, &c.Contacts},
		{&models.DealModel{}, &c.Deals},
		{&models.ProductModel{}, &c.Products},
		{&models.CustomerModel{}, &c.Customers},
		{&models.InvoiceModel{}, &c.Invoices},
		{&models.EmployeeModel{}, &c.Employees},
		{&models.SalesOrderModel{}, &c.Orders},
	}
	for _, t := range targets {
		n, err := r.count(ctx, t.model, nil)
		if err != nil {
			return c, err
		}
		*t.dst = n
	}
	return c, nil
}

var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
