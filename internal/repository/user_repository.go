package repository

import (
	"context"

	"gorm.io/gorm"

	"hijabstore/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) ([]model.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
	ListSummaries(ctx context.Context) ([]model.UserSummary, error)
	Delete(ctx context.Context, id uint) (int64, error)
	UpdateEmail(ctx context.Context, id uint, email string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmail returns every row carrying email, oldest first. Duplicates are
// possible since uniqueness is only checked before insert.
func (r *userRepository) FindByEmail(ctx context.Context, email string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByCredentials returns the first row matching both fields exactly, or
// gorm.ErrRecordNotFound.
func (r *userRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND password = ?", email, password).
		Order("id ASC").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByAPIKey(ctx context.Context, apiKey string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("apiKey = ?", apiKey).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListSummaries lists all users ordered by role, so admins come first.
func (r *userRepository) ListSummaries(ctx context.Context) ([]model.UserSummary, error) {
	users := make([]model.UserSummary, 0)
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("id", "email", "role", "apiKey").
		Order("role ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user and reports how many rows went away.
func (r *userRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("email", email).Error
}
