package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// Create persists a new lead
func (r *GormLeadRepository) Create(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Lead with this email")
	}
	lead.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing lead
func (r *GormLeadRepository) Update(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateWriteError(err, "Lead with this email")
	}
	lead.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uint) (*crm.Lead, error) {
	m, err := findOne[models.LeadModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByEmail checks whether another lead uses email. excludeID skips the
// lead being updated; pass 0 on create.
func (r *GormLeadRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	return exists[models.LeadModel](ctx, r.db, "LOWER(email) = LOWER(?) AND id <> ?", email, excludeID)
}

// FindAll lists leads filtered by status, company and free text
func (r *GormLeadRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Lead], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, crm.FilterStatus, "status")
		if company, ok := filter.Get(crm.FilterCompany); ok {
			if s, _ := company.(string); s != "" {
				db = containsFold(db, s, "company")
			}
		}
		return containsFold(db, filter.Search, "first_name", "last_name", "email", "company")
	}
	rows, total, err := findPage[models.LeadModel](ctx, r.db, filter, where,
		orderClause(filter, LeadSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[crm.Lead]{}, err
	}
	return toPage(rows, total, filter, (*models.LeadModel).ToDomain), nil
}

// GormContactRepository implements crm.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create persists a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *crm.Contact) error {
	model := models.ContactModelFromDomain(contact)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Contact")
	}
	contact.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uint) (*crm.Contact, error) {
	m, err := findOne[models.ContactModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists active contacts
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Contact], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		db = whereIfSet(db, filter, crm.FilterType, "type")
		return containsFold(db, filter.Search, "first_name", "last_name", "company_name", "email")
	}
	rows, total, err := findPage[models.ContactModel](ctx, r.db, filter, where,
		orderClause(filter, ContactSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[crm.Contact]{}, err
	}
	return toPage(rows, total, filter, (*models.ContactModel).ToDomain), nil
}

// GormDealRepository implements crm.DealRepository using GORM
type GormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// Create persists a new deal
func (r *GormDealRepository) Create(ctx context.Context, deal *crm.Deal) error {
	model := models.DealModelFromDomain(deal)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Deal")
	}
	deal.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// FindByID finds a deal by its ID
func (r *GormDealRepository) FindByID(ctx context.Context, id uint) (*crm.Deal, error) {
	m, err := findOne[models.DealModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists deals filtered by stage and contact
func (r *GormDealRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Deal], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, crm.FilterStage, "stage")
		return whereIfSet(db, filter, crm.FilterContactID, "contact_id")
	}
	rows, total, err := findPage[models.DealModel](ctx, r.db, filter, where,
		orderClause(filter, DealSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[crm.Deal]{}, err
	}
	return toPage(rows, total, filter, (*models.DealModel).ToDomain), nil
}

// GormActivityRepository implements crm.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create persists a new activity
func (r *GormActivityRepository) Create(ctx context.Context, activity *crm.Activity) error {
	model := models.ActivityModelFromDomain(activity)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "Activity")
	}
	activity.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing activity
func (r *GormActivityRepository) Update(ctx context.Context, activity *crm.Activity) error {
	model := models.ActivityModelFromDomain(activity)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	activity.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds an activity by its ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uint) (*crm.Activity, error) {
	m, err := findOne[models.ActivityModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists activities, latest scheduled first
func (r *GormActivityRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[crm.Activity], error) {
	where := func(db *gorm.DB) *gorm.DB {
		db = whereIfSet(db, filter, crm.FilterLeadID, "lead_id")
		db = whereIfSet(db, filter, crm.FilterContactID, "contact_id")
		db = whereIfSet(db, filter, crm.FilterDealID, "deal_id")
		return whereIfSet(db, filter, crm.FilterIsCompleted, "is_completed")
	}
	rows, total, err := findPage[models.ActivityModel](ctx, r.db, filter, where,
		orderClause(filter, ActivitySortFields, "scheduled_at DESC"))
	if err != nil {
		return shared.Page[crm.Activity]{}, err
	}
	return toPage(rows, total, filter, (*models.ActivityModel).ToDomain), nil
}

var (
	_ crm.LeadRepository     = (*GormLeadRepository)(nil)
	_ crm.ContactRepository  = (*GormContactRepository)(nil)
	_ crm.DealRepository     = (*GormDealRepository)(nil)
	_ crm.ActivityRepository = (*GormActivityRepository)(nil)
)
