package repositories

import (
	"context"

	"github.com/anonto42/oomool/backend/internal/models"
	"gorm.io/gorm"
)

type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, id string) error
	GetBookmark(ctx context.Context, userID, postID string) (*models.Bookmark, error)
}

type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	return normalize(r.db.WithContext(ctx).Create(bookmark).Error)
}

func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) GetBookmark(ctx context.Context, userID, postID string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&bookmark).Error; err != nil {
		return nil, normalize(err)
	}
	return &bookmark, nil
}
