package crm

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// LeadStatus represents where a lead is in qualification
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// IsValid reports whether s is a known lead status
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a prospective customer that has not been qualified yet
type Lead struct {
	shared.BaseEntity
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Company    string
	JobTitle   string
	Status     LeadStatus
	Source     string
	Notes      string
	AssignedTo *uint
	CreatedBy  *uint
}

// LeadDetails holds the mutable fields of a lead
type LeadDetails struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Company    string
	JobTitle   string
	Status     LeadStatus
	Source     string
	Notes      string
	AssignedTo *uint
}

// NewLead creates a lead from validated details
func NewLead(d LeadDetails, createdBy *uint) (*Lead, error) {
	lead := &Lead{BaseEntity: shared.NewBaseEntity(), CreatedBy: createdBy}
	if err := lead.apply(d); err != nil {
		return nil, err
	}
	return lead, nil
}

// Update replaces every mutable field of the lead
func (l *Lead) Update(d LeadDetails) error {
	if err := l.apply(d); err != nil {
		return err
	}
	l.Touch()
	return nil
}

func (l *Lead) apply(d LeadDetails) error {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	if d.FirstName == "" || d.LastName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Lead first and last name are required")
	}
	if d.Status == "" {
		d.Status = LeadStatusNew
	}
	if !d.Status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid lead status")
	}
	l.FirstName = d.FirstName
	l.LastName = d.LastName
	l.Email = strings.ToLower(strings.TrimSpace(d.Email))
	l.Phone = d.Phone
	l.Company = d.Company
	l.JobTitle = d.JobTitle
	l.Status = d.Status
	l.Source = d.Source
	l.Notes = d.Notes
	l.AssignedTo = d.AssignedTo
	return nil
}

// FullName returns "first last"
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}
