package persistence

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds the ORDER BY for a listing. Without an explicit,
// whitelisted OrderBy the entity default applies. id breaks ties so that
// pagination is stable.
func orderClause(filter shared.Filter, allowed map[string]bool, defaultClause string) string {
	field := ValidateSortField(filter.OrderBy, allowed, "")
	if field == "" {
		return defaultClause + ", id DESC"
	}
	return field + " " + ValidateSortOrder(filter.OrderDir) + ", id DESC"
}

// CommonSortFields contains fields present on every table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for k := range CommonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// Allowed sort fields per listing
var (
	UserSortFields          = withCommon("username", "email", "full_name", "role", "last_login")
	LeadSortFields          = withCommon("first_name", "last_name", "company", "status")
	ContactSortFields       = withCommon("first_name", "last_name", "company_name")
	DealSortFields          = withCommon("name", "amount", "stage", "probability", "expected_close_date")
	ActivitySortFields      = withCommon("scheduled_at", "subject", "activity_type")
	CategorySortFields      = withCommon("name")
	ProductSortFields       = withCommon("sku", "name", "selling_price", "current_stock")
	WarehouseSortFields     = withCommon("name", "code")
	StockMovementSortFields = withCommon("movement_type", "quantity")
	CustomerSortFields      = withCommon("name", "customer_number", "credit_limit")
	InvoiceSortFields       = withCommon("invoice_number", "issue_date", "due_date", "total_amount", "balance_due", "status")
	PaymentSortFields       = withCommon("payment_number", "payment_date", "amount")
	ExpenseSortFields       = withCommon("expense_number", "date", "amount", "category")
	DepartmentSortFields    = withCommon("name", "code")
	EmployeeSortFields      = withCommon("employee_id", "first_name", "last_name", "hire_date", "salary")
	AttendanceSortFields    = withCommon("date", "total_hours")
	LeaveRequestSortFields  = withCommon("start_date", "end_date", "status")
	PayrollSortFields       = withCommon("pay_period_start", "pay_period_end", "net_salary")
	QuoteSortFields         = withCommon("quote_number", "quote_date", "valid_until", "total_amount")
	OrderSortFields         = withCommon("order_number", "order_date", "total_amount", "status")
	ShipmentSortFields      = withCommon("shipment_number", "ship_date", "status")
)
