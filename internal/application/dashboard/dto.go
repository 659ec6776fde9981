package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsResponse is the body of GET /api/dashboard/stats
type StatsResponse struct {
	CRM        CRMStats        `json:"crm"`
	Inventory  InventoryStats  `json:"inventory"`
	Accounting AccountingStats `json:"accounting"`
	HR         HRStats         `json:"hr"`
	Sales      SalesStats      `json:"sales"`
}

type CRMStats struct {
	TotalLeads        int64           `json:"total_leads"`
	NewLeadsThisMonth int64           `json:"new_leads_this_month"`
	NewLeadsLastMonth int64           `json:"new_leads_last_month"`
	TotalContacts     int64           `json:"total_contacts"`
	TotalDeals        int64           `json:"total_deals"`
	TotalDealValue    decimal.Decimal `json:"total_deal_value"`
}

type InventoryStats struct {
	TotalProducts    int64 `json:"total_products"`
	LowStockProducts int64 `json:"low_stock_products"`
}

type AccountingStats struct {
	TotalCustomers    int64           `json:"total_customers"`
	TotalInvoices     int64           `json:"total_invoices"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	ThisMonthRevenue  decimal.Decimal `json:"this_month_revenue"`
	LastMonthRevenue  decimal.Decimal `json:"last_month_revenue"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

type HRStats struct {
	TotalEmployees       int64 `json:"total_employees"`
	PendingLeaveRequests int64 `json:"pending_leave_requests"`
}

type SalesStats struct {
	TotalOrders     int64 `json:"total_orders"`
	ThisMonthOrders int64 `json:"this_month_orders"`
	LastMonthOrders int64 `json:"last_month_orders"`
}

// ActivityResponse is one entry of the recent activity feed
type ActivityResponse struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Module      string    `json:"module"`
}

// ChartResponse is a labelled series
type ChartResponse struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// PipelineResponse holds parallel arrays indexed by stage
type PipelineResponse struct {
	Stages []string          `json:"stages"`
	Counts []int64           `json:"counts"`
	Values []decimal.Decimal `json:"values"`
}
