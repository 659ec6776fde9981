package crm

import (
	"strings"

	"github.com/erp/erpapp/internal/domain/shared"
)

// ContactType distinguishes people from organisations
type ContactType string

const (
	ContactTypeIndividual ContactType = "individual"
	ContactTypeCompany    ContactType = "company"
)

// Contact is a person or company the business deals with
type Contact struct {
	shared.BaseEntity
	Type        ContactType
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	Website     string
	Address     string
	Notes       string
	IsActive    bool
}

// ContactDetails holds the fields accepted when creating a contact
type ContactDetails struct {
	Type        ContactType
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	Website     string
	Address     string
	Notes       string
}

// NewContact creates an active contact
func NewContact(d ContactDetails) (*Contact, error) {
	if d.Type == "" {
		d.Type = ContactTypeIndividual
	}
	switch d.Type {
	case ContactTypeIndividual:
		if strings.TrimSpace(d.FirstName) == "" && strings.TrimSpace(d.LastName) == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Individual contacts need a first or last name")
		}
	case ContactTypeCompany:
		if strings.TrimSpace(d.CompanyName) == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Company contacts need a company name")
		}
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid contact type")
	}

	return &Contact{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        d.Type,
		FirstName:   strings.TrimSpace(d.FirstName),
		LastName:    strings.TrimSpace(d.LastName),
		CompanyName: strings.TrimSpace(d.CompanyName),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:       d.Phone,
		Website:     d.Website,
		Address:     d.Address,
		Notes:       d.Notes,
		IsActive:    true,
	}, nil
}

// DisplayName returns the company name for companies and the person's name otherwise
func (c *Contact) DisplayName() string {
	if c.Type == ContactTypeCompany {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
