package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/erp/erpapp/internal/domain/shared"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	errInvalidRole = shared.NewDomainError("INVALID_INPUT", "Unknown role")
)

// MinPasswordLength is the shortest password registration accepts
const MinPasswordLength = 6

// User is a credential record. The password hash is produced by the
// application layer through a PasswordHasher; the entity never sees the
// plain text after registration.
type User struct {
	shared.BaseEntity
	Username            string
	Email               string
	FullName            string
	HashedPassword      string
	Role                Role
	Phone               string
	IsActive            bool
	IsVerified          bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLogin           *time.Time
	CreatedBy           *uint
}

// NewUser creates an active user with validated identity fields.
// hashedPassword must already be hashed.
func NewUser(username, email, fullName, hashedPassword string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if hashedPassword == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	if role == "" {
		role = DefaultRole
	}
	if !role.IsValid() {
		return nil, errInvalidRole
	}

	return &User{
		BaseEntity:     shared.NewBaseEntity(),
		Username:       username,
		Email:          email,
		FullName:       strings.TrimSpace(fullName),
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       true,
	}, nil
}

// IsLocked reports whether a lock is in effect at now
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// CheckCanLogin returns the reason a user may not log in, or nil
func (u *User) CheckCanLogin(now time.Time) error {
	if !u.IsActive {
		return shared.ErrAccountInactive
	}
	if u.IsLocked(now) {
		return shared.ErrAccountLocked
	}
	return nil
}

// RecordLoginSuccess resets the failure counter, clears any lock and stamps
// the login time.
func (u *User) RecordLoginSuccess(now time.Time) {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.LastLogin = &now
	u.UpdatedAt = now
}

// RecordLoginFailure counts a failed attempt and locks the account once
// maxAttempts is reached. Returns true when the account became locked.
func (u *User) RecordLoginFailure(now time.Time, maxAttempts int, lockDuration time.Duration) bool {
	u.FailedLoginAttempts++
	u.UpdatedAt = now

	if maxAttempts > 0 && u.FailedLoginAttempts >= maxAttempts {
		until := now.Add(lockDuration)
		u.LockedUntil = &until
		u.FailedLoginAttempts = 0
		return true
	}
	return false
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// Activate enables the account
func (u *User) Activate() {
	u.IsActive = true
	u.Touch()
}

// ValidateUsername checks the username format
func ValidateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_INPUT", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_INPUT", "Username must be at least 3 characters")
	}
	if len(username) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Username cannot exceed 50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_INPUT", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

// ValidateEmail checks the email format
func ValidateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	if len(email) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot exceed 100 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_INPUT", "Invalid email format")
	}
	return nil
}

// ValidatePassword checks the plain text password before hashing
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_INPUT", "Password cannot exceed 72 characters")
	}
	return nil
}
