package crm

import (
	"time"

	"github.com/erp/erpapp/internal/application/common"
	"github.com/erp/erpapp/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// LeadRequest is the body for creating or replacing a lead
type LeadRequest struct {
	FirstName  string `json:"first_name" binding:"required,max=50"`
	LastName   string `json:"last_name" binding:"required,max=50"`
	Email      string `json:"email" binding:"omitempty,email,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	Company    string `json:"company" binding:"omitempty,max=100"`
	JobTitle   string `json:"job_title" binding:"omitempty,max=100"`
	Status     string `json:"status" binding:"omitempty,oneof=new contacted qualified converted lost"`
	Source     string `json:"source" binding:"omitempty,max=50"`
	Notes      string `json:"notes"`
	AssignedTo *uint  `json:"assigned_to"`
}

func (r LeadRequest) details() crm.LeadDetails {
	return crm.LeadDetails{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Company:    r.Company,
		JobTitle:   r.JobTitle,
		Status:     crm.LeadStatus(r.Status),
		Source:     r.Source,
		Notes:      r.Notes,
		AssignedTo: r.AssignedTo,
	}
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company,omitempty"`
	JobTitle   string    `json:"job_title,omitempty"`
	Status     string    `json:"status"`
	Source     string    `json:"source,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	AssignedTo *uint     `json:"assigned_to"`
	CreatedBy  *uint     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LeadListQuery filters the lead listing
type LeadListQuery struct {
	common.PageQuery
	Status  string `form:"status"`
	Company string `form:"company"`
	Search  string `form:"search"`
}

// ToLeadResponse converts a domain lead
func ToLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:         l.ID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Email:      l.Email,
		Phone:      l.Phone,
		Company:    l.Company,
		JobTitle:   l.JobTitle,
		Status:     string(l.Status),
		Source:     l.Source,
		Notes:      l.Notes,
		AssignedTo: l.AssignedTo,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// ContactRequest is the body for creating a contact
type ContactRequest struct {
	Type        string `json:"type" binding:"omitempty,oneof=individual company"`
	FirstName   string `json:"first_name" binding:"omitempty,max=50"`
	LastName    string `json:"last_name" binding:"omitempty,max=50"`
	CompanyName string `json:"company_name" binding:"omitempty,max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	Website     string `json:"website" binding:"omitempty,max=200"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContactListQuery filters the contact listing
type ContactListQuery struct {
	common.PageQuery
	Type   string `form:"type"`
	Search string `form:"search"`
}

// ToContactResponse converts a domain contact
func ToContactResponse(c *crm.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		Type:        string(c.Type),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Website:     c.Website,
		Address:     c.Address,
		Notes:       c.Notes,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// DealRequest is the body for creating a deal
type DealRequest struct {
	Name              string          `json:"name" binding:"required,max=200"`
	ContactID         *uint           `json:"contact_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency" binding:"omitempty,len=3"`
	Stage             string          `json:"stage" binding:"omitempty,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
	Probability       int             `json:"probability" binding:"min=0,max=100"`
	ExpectedCloseDate *common.Date    `json:"expected_close_date"`
	Description       string          `json:"description"`
	AssignedTo        *uint           `json:"assigned_to"`
}

// DealResponse represents a deal in API responses
type DealResponse struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	ContactID         *uint           `json:"contact_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Stage             string          `json:"stage"`
	Probability       int             `json:"probability"`
	ExpectedCloseDate *common.Date    `json:"expected_close_date"`
	Description       string          `json:"description,omitempty"`
	AssignedTo        *uint           `json:"assigned_to"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DealListQuery filters the deal listing
type DealListQuery struct {
	common.PageQuery
	Stage     string `form:"stage"`
	ContactID *uint  `form:"contact_id"`
}

// ToDealResponse converts a domain deal
func ToDealResponse(d *crm.Deal) DealResponse {
	return DealResponse{
		ID:                d.ID,
		Name:              d.Name,
		ContactID:         d.ContactID,
		Amount:            d.Amount,
		Currency:          d.Currency,
		Stage:             string(d.Stage),
		Probability:       d.Probability,
		ExpectedCloseDate: common.DatePtr(d.ExpectedCloseDate),
		Description:       d.Description,
		AssignedTo:        d.AssignedTo,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ActivityRequest is the body for scheduling an activity
type ActivityRequest struct {
	ActivityType string    `json:"activity_type" binding:"required,oneof=call email meeting task note"`
	Subject      string    `json:"subject" binding:"required,max=200"`
	Description  string    `json:"description"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	LeadID       *uint     `json:"lead_id"`
	ContactID    *uint     `json:"contact_id"`
	DealID       *uint     `json:"deal_id"`
	AssignedTo   *uint     `json:"assigned_to"`
}

// ActivityResponse represents an activity in API responses
type ActivityResponse struct {
	ID           uint       `json:"id"`
	ActivityType string     `json:"activity_type"`
	Subject      string     `json:"subject"`
	Description  string     `json:"description,omitempty"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	LeadID       *uint      `json:"lead_id"`
	ContactID    *uint      `json:"contact_id"`
	DealID       *uint      `json:"deal_id"`
	AssignedTo   *uint      `json:"assigned_to"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ActivityListQuery filters the activity listing
type ActivityListQuery struct {
	common.PageQuery
	LeadID      *uint `form:"lead_id"`
	ContactID   *uint `form:"contact_id"`
	DealID      *uint `form:"deal_id"`
	IsCompleted *bool `form:"is_completed"`
}

// ToActivityResponse converts a domain activity
func ToActivityResponse(a *crm.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ActivityType: string(a.ActivityType),
		Subject:      a.Subject,
		Description:  a.Description,
		ScheduledAt:  a.ScheduledAt,
		IsCompleted:  a.IsCompleted,
		CompletedAt:  a.CompletedAt,
		LeadID:       a.LeadID,
		ContactID:    a.ContactID,
		DealID:       a.DealID,
		AssignedTo:   a.AssignedTo,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
