package models

import (
	"time"

	"github.com/erp/erpapp/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username            string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email               string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	FullName            string        `gorm:"type:varchar(100);not null"`
	HashedPassword      string        `gorm:"type:varchar(255);not null"`
	Role                identity.Role `gorm:"type:varchar(20);not null;default:'employee'"`
	Phone               string        `gorm:"type:varchar(20)"`
	IsActive            bool          `gorm:"not null"`
	IsVerified          bool          `gorm:"not null;default:false"`
	FailedLoginAttempts int           `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	LastLogin           *time.Time
	CreatedBy           *uint `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:          m.BaseModel.ToDomain(),
		Username:            m.Username,
		Email:               m.Email,
		FullName:            m.FullName,
		HashedPassword:      m.HashedPassword,
		Role:                m.Role,
		Phone:               m.Phone,
		IsActive:            m.IsActive,
		IsVerified:          m.IsVerified,
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		LastLogin:           m.LastLogin,
		CreatedBy:           m.CreatedBy,
	}
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:            u.Username,
		Email:               u.Email,
		FullName:            u.FullName,
		HashedPassword:      u.HashedPassword,
		Role:                u.Role,
		Phone:               u.Phone,
		IsActive:            u.IsActive,
		IsVerified:          u.IsVerified,
		FailedLoginAttempts: u.FailedLoginAttempts,
		LockedUntil:         u.LockedUntil,
		LastLogin:           u.LastLogin,
		CreatedBy:           u.CreatedBy,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
