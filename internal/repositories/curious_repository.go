package repositories

import (
	"context"

	"github.com/anonto42/oomool/backend/internal/models"
	"gorm.io/gorm"
)

type CuriousRepository interface {
	CreateCurious(ctx context.Context, curious *models.Curious) error
	DeleteCurious(ctx context.Context, id string) error
	GetCurious(ctx context.Context, userID, questionID string) (*models.Curious, error)
	// CuriousQuestionIDs returns the subset of questionIDs the user marked curious.
	CuriousQuestionIDs(ctx context.Context, userID string, questionIDs []string) (map[string]bool, error)
}

type PostgresCuriousRepository struct {
	db *gorm.DB
}

func NewPostgresCuriousRepository(db *gorm.DB) *PostgresCuriousRepository {
	return &PostgresCuriousRepository{db: db}
}

func (r *PostgresCuriousRepository) CreateCurious(ctx context.Context, curious *models.Curious) error {
	return normalize(r.db.WithContext(ctx).Create(curious).Error)
}

func (r *PostgresCuriousRepository) DeleteCurious(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Curious{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCuriousRepository) GetCurious(ctx context.Context, userID, questionID string) (*models.Curious, error) {
	var curious models.Curious
	if err := r.db.WithContext(ctx).Where("user_id = ? AND question_id = ?", userID, questionID).First(&curious).Error; err != nil {
		return nil, normalize(err)
	}
	return &curious, nil
}

func (r *PostgresCuriousRepository) CuriousQuestionIDs(ctx context.Context, userID string, questionIDs []string) (map[string]bool, error) {
	marked := make(map[string]bool, len(questionIDs))
	if userID == "" || len(questionIDs) == 0 {
		return marked, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Curious{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		marked[id] = true
	}
	return marked, nil
}
