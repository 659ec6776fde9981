package models

import (
	"time"

	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// LeadModel is the persistence model for leads
type LeadModel struct {
	BaseModel
	FirstName  string         `gorm:"type:varchar(50);not null"`
	LastName   string         `gorm:"type:varchar(50);not null"`
	Email      *string        `gorm:"type:varchar(100);uniqueIndex"`
	Phone      string         `gorm:"type:varchar(20)"`
	Company    string         `gorm:"type:varchar(100);index"`
	JobTitle   string         `gorm:"type:varchar(100)"`
	Status     crm.LeadStatus `gorm:"type:varchar(20);not null;default:'new';index"`
	Source     string         `gorm:"type:varchar(50)"`
	Notes      string         `gorm:"type:text"`
	AssignedTo *uint          `gorm:"index"`
	CreatedBy  *uint          `gorm:"index"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the model to a domain Lead
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		BaseEntity: m.BaseModel.ToDomain(),
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      deref(m.Email),
		Phone:      m.Phone,
		Company:    m.Company,
		JobTitle:   m.JobTitle,
		Status:     m.Status,
		Source:     m.Source,
		Notes:      m.Notes,
		AssignedTo: m.AssignedTo,
		CreatedBy:  m.CreatedBy,
	}
}

// LeadModelFromDomain creates a model from a domain Lead
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Email:      nullable(l.Email),
		Phone:      l.Phone,
		Company:    l.Company,
		JobTitle:   l.JobTitle,
		Status:     l.Status,
		Source:     l.Source,
		Notes:      l.Notes,
		AssignedTo: l.AssignedTo,
		CreatedBy:  l.CreatedBy,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// ContactModel is the persistence model for contacts
type ContactModel struct {
	BaseModel
	Type        crm.ContactType `gorm:"type:varchar(20);not null;default:'individual'"`
	FirstName   string          `gorm:"type:varchar(50)"`
	LastName    string          `gorm:"type:varchar(50)"`
	CompanyName string          `gorm:"type:varchar(100)"`
	Email       string          `gorm:"type:varchar(100);index"`
	Phone       string          `gorm:"type:varchar(20)"`
	Website     string          `gorm:"type:varchar(200)"`
	Address     string          `gorm:"type:text"`
	Notes       string          `gorm:"type:text"`
	IsActive    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the model to a domain Contact
func (m *ContactModel) ToDomain() *crm.Contact {
	return &crm.Contact{
		BaseEntity:  m.BaseModel.ToDomain(),
		Type:        m.Type,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		CompanyName: m.CompanyName,
		Email:       m.Email,
		Phone:       m.Phone,
		Website:     m.Website,
		Address:     m.Address,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
	}
}

// ContactModelFromDomain creates a model from a domain Contact
func ContactModelFromDomain(c *crm.Contact) *ContactModel {
	m := &ContactModel{
		Type:        c.Type,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Website:     c.Website,
		Address:     c.Address,
		Notes:       c.Notes,
		IsActive:    c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// DealModel is the persistence model for deals
type DealModel struct {
	BaseModel
	Name              string          `gorm:"type:varchar(200);not null"`
	ContactID         *uint           `gorm:"index"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Stage             crm.DealStage   `gorm:"type:varchar(20);not null;default:'prospecting';index"`
	Probability       int             `gorm:"not null;default:0"`
	ExpectedCloseDate *time.Time      `gorm:"type:date"`
	Description       string          `gorm:"type:text"`
	AssignedTo        *uint           `gorm:"index"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the model to a domain Deal
func (m *DealModel) ToDomain() *crm.Deal {
	return &crm.Deal{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		ContactID:         m.ContactID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Stage:             m.Stage,
		Probability:       m.Probability,
		ExpectedCloseDate: m.ExpectedCloseDate,
		Description:       m.Description,
		AssignedTo:        m.AssignedTo,
	}
}

// DealModelFromDomain creates a model from a domain Deal
func DealModelFromDomain(d *crm.Deal) *DealModel {
	m := &DealModel{
		Name:              d.Name,
		ContactID:         d.ContactID,
		Amount:            d.Amount,
		Currency:          d.Currency,
		Stage:             d.Stage,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Description:       d.Description,
		AssignedTo:        d.AssignedTo,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}

// ActivityModel is the persistence model for CRM activities
type ActivityModel struct {
	BaseModel
	ActivityType crm.ActivityType `gorm:"type:varchar(20);not null"`
	Subject      string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	ScheduledAt  time.Time        `gorm:"not null;index"`
	IsCompleted  bool             `gorm:"not null;default:false"`
	CompletedAt  *time.Time
	LeadID       *uint `gorm:"index"`
	ContactID    *uint `gorm:"index"`
	DealID       *uint `gorm:"index"`
	AssignedTo   *uint `gorm:"index"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the model to a domain Activity
func (m *ActivityModel) ToDomain() *crm.Activity {
	return &crm.Activity{
		BaseEntity:   m.BaseModel.ToDomain(),
		ActivityType: m.ActivityType,
		Subject:      m.Subject,
		Description:  m.Description,
		ScheduledAt:  m.ScheduledAt,
		IsCompleted:  m.IsCompleted,
		CompletedAt:  m.CompletedAt,
		LeadID:       m.LeadID,
		ContactID:    m.ContactID,
		DealID:       m.DealID,
		AssignedTo:   m.AssignedTo,
	}
}

// ActivityModelFromDomain creates a model from a domain Activity
func ActivityModelFromDomain(a *crm.Activity) *ActivityModel {
	m := &ActivityModel{
		ActivityType: a.ActivityType,
		Subject:      a.Subject,
		Description:  a.Description,
		ScheduledAt:  a.ScheduledAt,
		IsCompleted:  a.IsCompleted,
		CompletedAt:  a.CompletedAt,
		LeadID:       a.LeadID,
		ContactID:    a.ContactID,
		DealID:       a.DealID,
		AssignedTo:   a.AssignedTo,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
