package crm

import (
	"context"

	"github.com/erp/erpapp/internal/domain/shared"
)

// Filter keys understood by the CRM repositories
const (
	FilterStatus      = "status"
	FilterCompany     = "company"
	FilterType        = "type"
	FilterStage       = "stage"
	FilterContactID   = "contact_id"
	FilterLeadID      = "lead_id"
	FilterDealID      = "deal_id"
	FilterIsCompleted = "is_completed"
)

// LeadRepository persists leads
type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id uint) (*Lead, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Lead], error)
}

// ContactRepository persists contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uint) (*Contact, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Contact], error)
}

// DealRepository persists deals
type DealRepository interface {
	Create(ctx context.Context, deal *Deal) error
	FindByID(ctx context.Context, id uint) (*Deal, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Deal], error)
}

// ActivityRepository persists activities
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	Update(ctx context.Context, activity *Activity) error
	FindByID(ctx context.Context, id uint) (*Activity, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Page[Activity], error)
}
