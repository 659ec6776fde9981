package inventory

import (
	"github.com/erp/erpapp/internal/domain/shared"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "in"
	MovementTypeOut        MovementType = "out"
	MovementTypeAdjustment MovementType = "adjustment"
)

// IsValid reports whether t is a known movement type
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut || t == MovementTypeAdjustment
}

// StockMovement records one change to a product's stock level together with
// the before/after snapshot.
//
// For in and out movements Quantity is the positive amount moved. For
// adjustments Quantity is the signed difference between the counted stock and
// the previous level, so QuantityAfter == QuantityBefore + Quantity.
type StockMovement struct {
	shared.BaseEntity
	ProductID       uint
	WarehouseID     *uint
	MovementType    MovementType
	Quantity        int
	QuantityBefore  int
	QuantityAfter   int
	ReferenceNumber string
	Reason          string
	CreatedBy       *uint
}

// MovementRequest describes a stock change to apply to a product
type MovementRequest struct {
	WarehouseID     *uint
	MovementType    MovementType
	Quantity        int
	ReferenceNumber string
	Reason          string
	CreatedBy       *uint
}

// ApplyMovement mutates the product's stock and returns the movement record.
// An out movement that would take stock below zero fails with
// ErrInsufficientStock. For adjustments req.Quantity is the counted stock.
func (p *Product) ApplyMovement(req MovementRequest) (*StockMovement, error) {
	if !req.MovementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid movement type")
	}
	if !p.TrackInventory {
		return nil, shared.NewDomainError("INVALID_STATE", "Product does not track inventory")
	}

	before := p.CurrentStock
	var after, qty int

	switch req.MovementType {
	case MovementTypeIn:
		if req.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
		}
		qty = req.Quantity
		after = before + qty
	case MovementTypeOut:
		if req.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
		}
		qty = req.Quantity
		after = before - qty
		if after < 0 {
			return nil, shared.ErrInsufficientStock
		}
	case MovementTypeAdjustment:
		if req.Quantity < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Counted stock cannot be negative")
		}
		if req.Reason == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment reason is required")
		}
		after = req.Quantity
		qty = after - before
	}

	p.CurrentStock = after
	p.Touch()

	return &StockMovement{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       p.ID,
		WarehouseID:     req.WarehouseID,
		MovementType:    req.MovementType,
		Quantity:        qty,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReferenceNumber: req.ReferenceNumber,
		Reason:          req.Reason,
		CreatedBy:       req.CreatedBy,
	}, nil
}

// IsConsistent reports whether the snapshot matches the movement amount
func (m *StockMovement) IsConsistent() bool {
	switch m.MovementType {
	case MovementTypeOut:
		return m.QuantityAfter == m.QuantityBefore-m.Quantity
	default:
		return m.QuantityAfter == m.QuantityBefore+m.Quantity
	}
}
