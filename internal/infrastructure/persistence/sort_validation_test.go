package persistence

import (
	"testing"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE users;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, "name", ValidateSortField("name", allowed, "id"))
	assert.Equal(t, "name", ValidateSortField("  name ", allowed, "id"))
	assert.Equal(t, "id", ValidateSortField("", allowed, "id"))
	assert.Equal(t, "id", ValidateSortField("password", allowed, "id"))
	assert.Equal(t, "id", ValidateSortField("name; DROP TABLE users", allowed, "id"))
}

func TestOrderClause(t *testing.T) {
	f := shared.DefaultFilter()
	assert.Equal(t, "created_at DESC, id DESC", orderClause(f, LeadSortFields, "created_at DESC"))

	f.OrderBy = "company"
	f.OrderDir = "asc"
	assert.Equal(t, "company ASC, id DESC", orderClause(f, LeadSortFields, "created_at DESC"))

	f.OrderBy = "hashed_password"
	assert.Equal(t, "created_at DESC, id DESC", orderClause(f, UserSortFields, "created_at DESC"))
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"users": UserSortFields, "leads": LeadSortFields, "products": ProductSortFields,
		"invoices": InvoiceSortFields, "employees": EmployeeSortFields, "orders": OrderSortFields,
	}
	for name, fields := range whitelists {
		t.Run(name, func(t *testing.T) {
			for common := range CommonSortFields {
				assert.True(t, fields[common], "%s should allow %s", name, common)
			}
		})
	}
	assert.False(t, UserSortFields["hashed_password"])
}
