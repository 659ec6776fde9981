package crm

import (
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// ActivityType is the kind of CRM activity
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeTask    ActivityType = "task"
	ActivityTypeNote    ActivityType = "note"
)

// IsValid reports whether t is a known activity type
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting, ActivityTypeTask, ActivityTypeNote:
		return true
	}
	return false
}

// Activity is a scheduled interaction linked to a lead, contact or deal
type Activity struct {
	shared.BaseEntity
	ActivityType ActivityType
	Subject      string
	Description  string
	ScheduledAt  time.Time
	IsCompleted  bool
	CompletedAt  *time.Time
	LeadID       *uint
	ContactID    *uint
	DealID       *uint
	AssignedTo   *uint
}

// ActivityDetails holds the fields accepted when creating an activity
type ActivityDetails struct {
	ActivityType ActivityType
	Subject      string
	Description  string
	ScheduledAt  time.Time
	LeadID       *uint
	ContactID    *uint
	DealID       *uint
	AssignedTo   *uint
}

// NewActivity creates an open activity
func NewActivity(d ActivityDetails) (*Activity, error) {
	if !d.ActivityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid activity type")
	}
	subject := strings.TrimSpace(d.Subject)
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Activity subject is required")
	}
	if d.ScheduledAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Activity scheduled_at is required")
	}

	return &Activity{
		BaseEntity:   shared.NewBaseEntity(),
		ActivityType: d.ActivityType,
		Subject:      subject,
		Description:  d.Description,
		ScheduledAt:  d.ScheduledAt,
		LeadID:       d.LeadID,
		ContactID:    d.ContactID,
		DealID:       d.DealID,
		AssignedTo:   d.AssignedTo,
	}, nil
}

// Complete marks the activity done
func (a *Activity) Complete(now time.Time) error {
	if a.IsCompleted {
		return shared.NewDomainError("INVALID_STATE", "Activity is already completed")
	}
	a.IsCompleted = true
	a.CompletedAt = &now
	a.UpdatedAt = now
	return nil
}
