package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogify/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return wrapGormError(r.db.WithContext(ctx).Omit("Author").Create(post).Error, "create post")
}

// FindByID loads a post together with its author's username.
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.withAuthor(ctx).First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, wrapGormError(err, "find post")
	}
	return &post, nil
}

// ListRecent returns at most limit posts, newest first, with author usernames.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	posts := make([]models.Post, 0, limit)
	err := r.withAuthor(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, wrapGormError(err, "list posts")
	}
	return posts, nil
}

func (r *PostRepository) Save(ctx context.Context, post *models.Post) error {
	return wrapGormError(r.db.WithContext(ctx).Omit("Author").Save(post).Error, "update post")
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return wrapGormError(res.Error, "delete post")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "username")
	})
}
