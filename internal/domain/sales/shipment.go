package sales

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// ShipmentStatus is the delivery state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// IsValid reports whether s is a known shipment status
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusShipped, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Shipment tracks goods leaving a warehouse for an order
type Shipment struct {
	shared.BaseEntity
	ShipmentNumber string
	OrderID        uint
	WarehouseID    *uint
	ShipDate       *time.Time
	Carrier        string
	TrackingNumber string
	Status         ShipmentStatus
	Notes          string
}

// ShipmentDetails holds the fields accepted when creating a shipment
type ShipmentDetails struct {
	ShipmentNumber string
	OrderID        uint
	WarehouseID    *uint
	ShipDate       *time.Time
	Carrier        string
	TrackingNumber string
	Status         ShipmentStatus
	Notes          string
}

// NewShipment creates a shipment, pending unless a status is given
func NewShipment(d ShipmentDetails) (*Shipment, error) {
	number := strings.TrimSpace(d.ShipmentNumber)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipment number is required")
	}
	if d.OrderID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipment order is required")
	}
	if d.Status == "" {
		d.Status = ShipmentStatusPending
	}
	if !d.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid shipment status")
	}
	return &Shipment{
		BaseEntity:     shared.NewBaseEntity(),
		ShipmentNumber: number,
		OrderID:        d.OrderID,
		WarehouseID:    d.WarehouseID,
		ShipDate:       d.ShipDate,
		Carrier:        d.Carrier,
		TrackingNumber: d.TrackingNumber,
		Status:         d.Status,
		Notes:          d.Notes,
	}, nil
}
