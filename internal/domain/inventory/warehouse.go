package inventory

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Warehouse is a physical stock location
type Warehouse struct {
	shared.BaseEntity
	Name        string
	Code        string
	Address     string
	City        string
	ManagerName string
	IsActive    bool
}

// NewWarehouse creates an active warehouse. Codes are stored upper-case.
func NewWarehouse(name, code, address, city, managerName string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse code is required")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse code cannot exceed 20 characters")
	}
	return &Warehouse{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Code:        code,
		Address:     address,
		City:        city,
		ManagerName: managerName,
		IsActive:    true,
	}, nil
}
