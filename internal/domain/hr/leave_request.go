package hr

import (
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

// LeaveType is the reason category of a leave request
type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeEmergency LeaveType = "emergency"
)

// IsValid reports whether t is a known leave type
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal, LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeEmergency:
		return true
	}
	return false
}

// LeaveStatus is the approval state of a leave request
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveRequest asks for time off between two dates, inclusive
type LeaveRequest struct {
	shared.BaseEntity
	EmployeeID    uint
	LeaveType     LeaveType
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
	Reason        string
	Status        LeaveStatus
	ApprovedBy    *uint
	ApprovedAt    *time.Time
}

// NewLeaveRequest creates a pending leave request
func NewLeaveRequest(employeeID uint, leaveType LeaveType, start, end time.Time, reason string) (*LeaveRequest, error) {
	if employeeID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Leave request employee is required")
	}
	if !leaveType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid leave type")
	}
	if start.IsZero() || end.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start and end dates are required")
	}
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}
	return &LeaveRequest{
		BaseEntity:    shared.NewBaseEntity(),
		EmployeeID:    employeeID,
		LeaveType:     leaveType,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: InclusiveDays(start, end),
		Reason:        reason,
		Status:        LeaveStatusPending,
	}, nil
}

// InclusiveDays counts calendar days from start to end, both included
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Approve moves a pending request to approved
func (l *LeaveRequest) Approve(approverID *uint, now time.Time) error {
	if l.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending leave requests can be approved")
	}
	l.Status = LeaveStatusApproved
	l.ApprovedBy = approverID
	l.ApprovedAt = &now
	l.UpdatedAt = now
	return nil
}

// Reject moves a pending request to rejected
func (l *LeaveRequest) Reject(approverID *uint, now time.Time) error {
	if l.Status != LeaveStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending leave requests can be rejected")
	}
	l.Status = LeaveStatusRejected
	l.ApprovedBy = approverID
	l.ApprovedAt = &now
	l.UpdatedAt = now
	return nil
}
