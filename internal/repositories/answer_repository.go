package repositories

import (
	"context"

	"github.com/anonto42/oomool/backend/internal/models"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	CreateAnswer(ctx context.Context, answer *models.Answer) error
	GetAnswerByID(ctx context.Context, id string) (*models.Answer, error)
	// AcceptAnswer un-accepts any previously accepted answer on the question and
	// accepts answerID, in one transaction.
	AcceptAnswer(ctx context.Context, questionID, answerID string) error
}

type PostgresAnswerRepository struct {
	db *gorm.DB
}

func NewPostgresAnswerRepository(db *gorm.DB) *PostgresAnswerRepository {
	return &PostgresAnswerRepository{db: db}
}

func (r *PostgresAnswerRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	return normalize(r.db.WithContext(ctx).Create(answer).Error)
}

func (r *PostgresAnswerRepository) GetAnswerByID(ctx context.Context, id string) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&answer).Error; err != nil {
		return nil, normalize(err)
	}
	return &answer, nil
}

func (r *PostgresAnswerRepository) AcceptAnswer(ctx context.Context, questionID, answerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ? AND is_accepted = ?", questionID, true).
			Update("is_accepted", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Answer{}).
			Where("id = ? AND question_id = ?", answerID, questionID).
			Update("is_accepted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&models.Question{}).
			Where("id = ?", questionID).
			Update("status", models.QuestionAnswered).Error
	})
}
