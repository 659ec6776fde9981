package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/accounting"
	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/report"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"github.com/erp/erpapp/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDashboardRepository_EmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewGormDashboardRepository(testutil.NewSQLiteDB(t))
	periods := report.PeriodsAt(time.Now())

	c, err := repo.CRMSummary(ctx, periods)
	require.NoError(t, err)
	assert.Zero(t, c.TotalLeads)
	assert.True(t, c.TotalDealValue.IsZero())

	a, err := repo.AccountingSummary(ctx, periods)
	require.NoError(t, err)
	assert.True(t, a.TotalRevenue.IsZero())
	assert.True(t, a.OutstandingAmount.IsZero())

	stages, err := repo.DealsByStage(ctx)
	require.NoError(t, err)
	assert.Empty(t, stages)

	counts, err := repo.EntityCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.EntityCounts{}, counts)
}

func TestGormDashboardRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormDashboardRepository(db)

	now := time.Now()
	thisMonth := report.MonthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0).AddDate(0, 0, 2)

	paidNow := createInvoice(t, db, "INV-A", decimal.NewFromInt(100), accounting.InvoiceStatusSent, thisMonth, thisMonth.AddDate(0, 1, 0))
	require.NoError(t, db.Table("invoices").Where("id = ?", paidNow.ID).
		Updates(map[string]interface{}{"status": "paid", "paid_amount": 100, "balance_due": 0}).Error)
	paidBefore := createInvoice(t, db, "INV-B", decimal.NewFromInt(40), accounting.InvoiceStatusSent, lastMonth, lastMonth.AddDate(0, 1, 0))
	require.NoError(t, db.Table("invoices").Where("id = ?", paidBefore.ID).
		Updates(map[string]interface{}{"status": "paid", "paid_amount": 40, "balance_due": 0}).Error)
	createInvoice(t, db, "INV-C", decimal.NewFromInt(25), accounting.InvoiceStatusSent, thisMonth, thisMonth.AddDate(0, 1, 0))

	deals := NewGormDealRepository(db)
	for _, d := range []struct {
		stage  crm.DealStage
		amount int64
	}{{crm.DealStageProposal, 10}, {crm.DealStageProposal, 15}, {crm.DealStageClosedWon, 100}} {
		deal, err := crm.NewDeal(crm.DealDetails{Name: "deal", Stage: d.stage, Amount: decimal.NewFromInt(d.amount)})
		require.NoError(t, err)
		require.NoError(t, deals.Create(ctx, deal))
	}
	mustLead(t, NewGormLeadRepository(db), "Ada", "Lovelace", "", "", crm.LeadStatusNew)

	periods := report.PeriodsAt(time.Now())

	acc, err := repo.AccountingSummary(ctx, periods)
	require.NoError(t, err)
	assert.Equal(t, int64(3), acc.TotalInvoices)
	assert.True(t, decimal.NewFromInt(140).Equal(acc.TotalRevenue), acc.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(100).Equal(acc.ThisMonthRevenue), acc.ThisMonthRevenue.String())
	assert.True(t, decimal.NewFromInt(40).Equal(acc.LastMonthRevenue), acc.LastMonthRevenue.String())
	assert.True(t, decimal.NewFromInt(25).Equal(acc.OutstandingAmount), acc.OutstandingAmount.String())

	crmSummary, err := repo.CRMSummary(ctx, periods)
	require.NoError(t, err)
	assert.Equal(t, int64(1), crmSummary.TotalLeads)
	assert.Equal(t, int64(1), crmSummary.NewLeadsThisMonth)
	assert.Equal(t, int64(3), crmSummary.TotalDeals)
	assert.True(t, decimal.NewFromInt(125).Equal(crmSummary.TotalDealValue))

	stages, err := repo.DealsByStage(ctx)
	require.NoError(t, err)
	byStage := map[string]report.StageTotal{}
	for _, s := range stages {
		byStage[s.Stage] = s
	}
	assert.Equal(t, int64(2), byStage["proposal"].Count)
	assert.True(t, decimal.NewFromInt(25).Equal(byStage["proposal"].Value))

	points, err := repo.PaidInvoices(ctx, report.Window{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth.AddDate(0, 1, 0)})
	require.NoError(t, err)
	assert.Len(t, points, 2)

	recent, err := repo.RecentInvoices(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "INV-C", recent[0].Number)

	leads, err := repo.RecentLeads(ctx, 5)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Lovelace", leads[0].LastName)

	counts, err := repo.EntityCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Deals)
	assert.Equal(t, int64(3), counts.Invoices)
}

func TestGormDashboardRepository_MonthWindowsIndependentOfLocalZone(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("UTC-5", -5*60*60),
		time.FixedZone("UTC+9", 9*60*60),
	}
	for _, zone := range zones {
		t.Run(zone.String(), func(t *testing.T) {
			local := time.Local
			time.Local = zone
			t.Cleanup(func() { time.Local = local })

			ctx := context.Background()
			db := testutil.NewSQLiteDB(t)
			repo := NewGormDashboardRepository(db)

			now := time.Now()
			first, err := common.ParseDate(report.MonthStart(now).Format(common.DateLayout))
			require.NoError(t, err)

			inv := createInvoice(t, db, "INV-1", decimal.NewFromInt(100), accounting.InvoiceStatusSent, first.Time, first.Time.AddDate(0, 1, 0))
			require.NoError(t, db.Table("invoices").Where("id = ?", inv.ID).
				Updates(map[string]interface{}{"status": "paid", "paid_amount": 100, "balance_due": 0}).Error)
			mustLead(t, NewGormLeadRepository(db), "Grace", "Hopper", "", "", crm.LeadStatusNew)

			periods := report.PeriodsAt(now)

			acc, err := repo.AccountingSummary(ctx, periods)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(100).Equal(acc.ThisMonthRevenue), acc.ThisMonthRevenue.String())
			assert.True(t, acc.LastMonthRevenue.IsZero(), acc.LastMonthRevenue.String())

			c, err := repo.CRMSummary(ctx, periods)
			require.NoError(t, err)
			assert.Equal(t, int64(1), c.NewLeadsThisMonth)
			assert.Zero(t, c.NewLeadsLastMonth)

			points, err := repo.PaidInvoices(ctx, report.Window{Start: report.MonthStart(now), End: report.MonthStart(now).AddDate(0, 1, 0)})
			require.NoError(t, err)
			require.Len(t, points, 1)
			assert.Equal(t, report.MonthStart(now).Format("2006-01"), points[0].IssueDate.UTC().Format("2006-01"))
		})
	}
}

func TestGormDashboardRepository_LowStockAndContactsIgnoreActiveFlag(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormDashboardRepository(db)

	products := []models.ProductModel{
		{SKU: "LOW-ACTIVE", Name: "a", TrackInventory: true, CurrentStock: 1, ReorderLevel: 5, IsActive: true},
		{SKU: "LOW-RETIRED", Name: "b", TrackInventory: true, CurrentStock: 0, ReorderLevel: 5, IsActive: false},
		{SKU: "UNTRACKED", Name: "c", TrackInventory: false, CurrentStock: 0, ReorderLevel: 5, IsActive: true},
		{SKU: "STOCKED", Name: "d", TrackInventory: true, CurrentStock: 50, ReorderLevel: 5, IsActive: true},
	}
	require.NoError(t, db.Create(&products).Error)

	contacts := []models.ContactModel{
		{Type: crm.ContactTypeIndividual, FirstName: "Active", IsActive: true},
		{Type: crm.ContactTypeIndividual, FirstName: "Archived", IsActive: false},
	}
	require.NoError(t, db.Create(&contacts).Error)

	inv, err := repo.InventorySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inv.TotalProducts)
	assert.Equal(t, int64(2), inv.LowStockProducts)

	c, err := repo.CRMSummary(ctx, report.PeriodsAt(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.TotalContacts)
}
