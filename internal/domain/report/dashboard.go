// Package report holds the read models behind the dashboard. They are
// assembled from aggregate queries across every module and are never
// written back.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is a half-open time range [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Periods are the calendar windows the dashboard compares
type Periods struct {
	// ThisMonth runs from the first of the current month to now
	ThisMonth Window
	// LastMonth is the whole previous calendar month
	LastMonth Window
}

// MonthStart truncates t to 00:00 UTC on the first of its UTC month. Date
// columns hold UTC midnights, so windows share that basis.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodsAt computes the dashboard periods relative to now
func PeriodsAt(now time.Time) Periods {
	now = now.UTC()
	thisStart := MonthStart(now)
	lastStart := thisStart.AddDate(0, -1, 0)
	return Periods{
		ThisMonth: Window{Start: thisStart, End: now.Add(time.Nanosecond)},
		LastMonth: Window{Start: lastStart, End: thisStart},
	}
}

// CRMSummary aggregates leads, contacts and deals
type CRMSummary struct {
	TotalLeads        int64
	NewLeadsThisMonth int64
	NewLeadsLastMonth int64
	TotalContacts     int64
	TotalDeals        int64
	TotalDealValue    decimal.Decimal
}

// InventorySummary aggregates products
type InventorySummary struct {
	TotalProducts    int64
	LowStockProducts int64
}

// AccountingSummary aggregates customers and invoices. Revenue only counts
// paid invoices, attributed by issue date.
type AccountingSummary struct {
	TotalCustomers    int64
	TotalInvoices     int64
	TotalRevenue      decimal.Decimal
	ThisMonthRevenue  decimal.Decimal
	LastMonthRevenue  decimal.Decimal
	OutstandingAmount decimal.Decimal
}

// HRSummary aggregates employees and leave requests
type HRSummary struct {
	TotalEmployees       int64
	PendingLeaveRequests int64
}

// SalesSummary aggregates sales orders by order date
type SalesSummary struct {
	TotalOrders     int64
	ThisMonthOrders int64
	LastMonthOrders int64
}

// RecentLead is the slice of a lead shown in the activity feed
type RecentLead struct {
	ID        uint
	FirstName string
	LastName  string
	Company   string
	CreatedAt time.Time
}

// RecentDocument is a numbered money document (order or invoice) shown in
// the activity feed
type RecentDocument struct {
	ID          uint
	Number      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// RevenuePoint is one paid invoice contributing to the revenue chart
type RevenuePoint struct {
	IssueDate time.Time
	Amount    decimal.Decimal
}

// StageTotal is the count and summed amount of deals in one stage
type StageTotal struct {
	Stage string
	Count int64
	Value decimal.Decimal
}

// EntityCounts are raw row counts per table, used by the metrics endpoints
type EntityCounts struct {
	Users     int64
	Leads     int64
	Contacts  int64
	Deals     int64
	Products  int64
	Customers int64
	Invoices  int64
	Employees int64
	Orders    int64
}

// Labeled returns the counts keyed by entity name
func (c EntityCounts) Labeled() map[string]int64 {
	return map[string]int64{
		"users":     c.Users,
		"leads":     c.Leads,
		"contacts":  c.Contacts,
		"deals":     c.Deals,
		"products":  c.Products,
		"customers": c.Customers,
		"invoices":  c.Invoices,
		"employees": c.Employees,
		"orders":    c.Orders,
	}
}
