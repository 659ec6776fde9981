package models

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// nullable maps an empty string to NULL so that unique indexes only apply to
// present values.
func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// All returns every model in dependency order, for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&LeadModel{}, &ContactModel{}, &DealModel{}, &ActivityModel{},
		&CategoryModel{}, &ProductModel{}, &WarehouseModel{}, &StockMovementModel{},
		&CustomerModel{}, &InvoiceModel{}, &PaymentModel{}, &ExpenseModel{},
		&EmployeeModel{}, &DepartmentModel{}, &AttendanceModel{}, &LeaveRequestModel{}, &PayrollModel{},
		&QuoteModel{}, &QuoteItemModel{}, &SalesOrderModel{}, &SalesOrderItemModel{}, &ShipmentModel{},
	}
}
