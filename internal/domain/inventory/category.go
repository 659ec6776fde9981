package inventory

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Category groups products. Categories form a tree through ParentID.
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
	ParentID    *uint
	IsActive    bool
}

// NewCategory creates an active category
func NewCategory(name, description string, parentID *uint) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		ParentID:    parentID,
		IsActive:    true,
	}, nil
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
