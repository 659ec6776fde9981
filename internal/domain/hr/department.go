package hr

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Department is an organisational unit
type Department struct {
	shared.BaseEntity
	Name        string
	Code        string
	Description string
	ManagerID   *uint
	IsActive    bool
}

// NewDepartment creates an active department. Codes are stored upper-case.
func NewDepartment(name, code, description string, managerID *uint) (*Department, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Department name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Department code is required")
	}
	return &Department{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Code:        code,
		Description: description,
		ManagerID:   managerID,
		IsActive:    true,
	}, nil
}
