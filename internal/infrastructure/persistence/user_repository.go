package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpapp/internal/domain/identity"
	"github.com/erp/erpapp/internal/domain/shared"
	"github.com/erp/erpapp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create persists a new user and copies the generated ID back
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateWriteError(err, "User")
	}
	user.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Update saves all fields of an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateWriteError(err, "User")
	}
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*identity.User, error) {
	m, err := findOne[models.UserModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	m, err := findOne[models.UserModel](ctx, r.db, "username = ?", username)
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByUsernameOrEmail finds a user whose username or email equals login.
// Emails are stored lowercased.
func (r *GormUserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*identity.User, error) {
	m, err := findOne[models.UserModel](ctx, r.db, "username = ? OR email = ?", login, strings.ToLower(login))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// ExistsByUsernameOrEmail checks whether either identifier is already taken
func (r *GormUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return exists[models.UserModel](ctx, r.db, "username = ? OR email = ?", username, strings.ToLower(email))
}

// FindAll lists users, newest first
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Page[identity.User], error) {
	where := func(db *gorm.DB) *gorm.DB {
		return containsFold(db, filter.Search, "username", "email", "full_name")
	}
	rows, total, err := findPage[models.UserModel](ctx, r.db, filter, where,
		orderClause(filter, UserSortFields, "created_at DESC"))
	if err != nil {
		return shared.Page[identity.User]{}, err
	}
	return toPage(rows, total, filter, (*models.UserModel).ToDomain), nil
}

// Count returns the number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}
