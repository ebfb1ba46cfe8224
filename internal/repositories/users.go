package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogify/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return wrapGormError(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapGormError(err, "find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapGormError(err, "find user by username")
	}
	return &user, nil
}

// UsernameTaken reports whether another user than except already owns username.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, except uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, except).
		Count(&count).Error
	if err != nil {
		return false, wrapGormError(err, "check username")
	}
	return count > 0, nil
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return wrapGormError(r.db.WithContext(ctx).Save(user).Error, "update user")
}
