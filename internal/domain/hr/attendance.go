package hr

import (
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AttendanceStatus is the presence state for a day
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusHalfDay AttendanceStatus = "half_day"
)

// IsValid reports whether s is a known attendance status
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusHalfDay:
		return true
	}
	return false
}

// Attendance is one employee's presence record for one day
type Attendance struct {
	shared.BaseEntity
	EmployeeID uint
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours decimal.Decimal
	Status     AttendanceStatus
	Notes      string
}

// AttendanceDetails holds the fields accepted when recording attendance
type AttendanceDetails struct {
	EmployeeID uint
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     AttendanceStatus
	Notes      string
}

// NewAttendance creates an attendance record, deriving TotalHours from the
// check-in and check-out times when both are present.
func NewAttendance(d AttendanceDetails) (*Attendance, error) {
	if d.EmployeeID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Attendance employee is required")
	}
	if d.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Attendance date is required")
	}
	if d.Status == "" {
		d.Status = AttendanceStatusPresent
	}
	if !d.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid attendance status")
	}

	hours := decimal.Zero
	if d.CheckIn != nil && d.CheckOut != nil {
		if d.CheckOut.Before(*d.CheckIn) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Check-out cannot be before check-in")
		}
		hours = decimal.NewFromFloat(d.CheckOut.Sub(*d.CheckIn).Hours()).Round(2)
	}

	return &Attendance{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: d.EmployeeID,
		Date:       d.Date,
		CheckIn:    d.CheckIn,
		CheckOut:   d.CheckOut,
		TotalHours: hours,
		Status:     d.Status,
		Notes:      d.Notes,
	}, nil
}
