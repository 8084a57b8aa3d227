package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/oomool/backend/internal/models"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestionByID(ctx context.Context, id string) (*models.Question, error)
	ListQuestions(ctx context.Context, opts QuestionListOptions) ([]models.Question, int64, error)
	GetQuestionsSince(ctx context.Context, since time.Time, limit int) ([]models.Question, error)
	SearchQuestions(ctx context.Context, query string, limit int) ([]models.Question, error)
}

// QuestionListOptions pages a question listing. Sort is one of "-created"
// (the default), "created", "-view_count", "-answer_count" or "-curious_count".
type QuestionListOptions struct {
	Page    int
	PerPage int
	Sort    string
}

var questionOrders = map[string]string{
	"-created":       "created_at DESC",
	"created":        "created_at ASC",
	"+created":       "created_at ASC",
	"-view_count":    "view_count DESC, created_at DESC",
	"-answer_count":  "answer_count DESC, created_at DESC",
	"-curious_count": "curious_count DESC, created_at DESC",
}

type PostgresQuestionRepository struct {
	db *gorm.DB
}

func NewPostgresQuestionRepository(db *gorm.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return normalize(r.db.WithContext(ctx).Create(question).Error)
}

func (r *PostgresQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, normalize(err)
	}
	return &question, nil
}

func (r *PostgresQuestionRepository) ListQuestions(ctx context.Context, opts QuestionListOptions) ([]models.Question, int64, error) {
	order, ok := questionOrders[opts.Sort]
	if !ok {
		order = questionOrders["-created"]
	}
	if opts.Page < 1 {
		opts.Page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := r.db.WithContext(ctx).
		Order(order).
		Offset((opts.Page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&questions).Error
	return questions, total, err
}

// GetQuestionsSince returns questions created at or after since, newest first.
func (r *PostgresQuestionRepository) GetQuestionsSince(ctx context.Context, since time.Time, limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// SearchQuestions matches query case-insensitively against title and content.
func (r *PostgresQuestionRepository) SearchQuestions(ctx context.Context, query string, limit int) ([]models.Question, error) {
	pattern := "%" + escapeLike(query) + "%"
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
