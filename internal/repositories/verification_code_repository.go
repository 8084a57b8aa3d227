package repositories

import (
	"context"
	"time"

	"github.com/anonto42/oomool/backend/internal/models"
	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	CreateCode(ctx context.Context, code *models.VerificationCode) error
	// FindActive returns the unverified record matching email and code.
	FindActive(ctx context.Context, email, code string) (*models.VerificationCode, error)
	// MarkVerified flips verified only if the record is still unverified.
	// It returns false when another request consumed the code first.
	MarkVerified(ctx context.Context, id string) (bool, error)
	DeleteCode(ctx context.Context, id string) error
	DeleteUnverifiedByEmail(ctx context.Context, email string) (int64, error)
	// DeleteStale removes verified codes and codes that expired before now.
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

type PostgresVerificationCodeRepository struct {
	db *gorm.DB
}

func NewPostgresVerificationCodeRepository(db *gorm.DB) *PostgresVerificationCodeRepository {
	return &PostgresVerificationCodeRepository{db: db}
}

func (r *PostgresVerificationCodeRepository) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	return normalize(r.db.WithContext(ctx).Create(code).Error)
}

func (r *PostgresVerificationCodeRepository) FindActive(ctx context.Context, email, code string) (*models.VerificationCode, error) {
	var record models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND verified = ?", email, code, false).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, normalize(err)
	}
	return &record, nil
}

func (r *PostgresVerificationCodeRepository) MarkVerified(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.VerificationCode{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresVerificationCodeRepository) DeleteCode(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.VerificationCode{}).Error
}

func (r *PostgresVerificationCodeRepository) DeleteUnverifiedByEmail(ctx context.Context, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("email = ? AND verified = ?", email, false).Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}

func (r *PostgresVerificationCodeRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("verified = ? OR expires_at < ?", true, now).Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}
