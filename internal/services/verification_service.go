package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/logger"
)

// VerificationService issues and checks single-use email codes.
//
// A new send supersedes the email's earlier unverified codes, so only the
// most recent code can succeed. Expiry is detected when a code is checked;
// the cleanup worker removes codes nobody checks.
type VerificationService struct {
	codes   repositories.VerificationCodeRepository
	mailer  Mailer
	limiter RateLimiter
	cfg     config.VerificationConfig

	now      func() time.Time
	generate func() (string, error)
}

// NewVerificationService accepts a nil mailer; SendCode then fails with ErrMailNotConfigured.
func NewVerificationService(codes repositories.VerificationCodeRepository, mailer Mailer, limiter RateLimiter, cfg config.VerificationConfig) *VerificationService {
	return &VerificationService{
		codes:    codes,
		mailer:   mailer,
		limiter:  limiter,
		cfg:      cfg,
		now:      time.Now,
		generate: generateCode,
	}
}

// generateCode returns a uniformly random code in 1000..9999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *VerificationService) SendCode(ctx context.Context, email string) (*models.VerificationCode, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, ErrEmailRequired.Wrap(err)
	}
	// Store the bare address so a later verify with just the address matches.
	email = normalizeEmail(addr.Address)

	if s.mailer == nil {
		return nil, ErrMailNotConfigured
	}
	if err := s.allow(ctx, "send:"+email, s.cfg.SendLimit, s.cfg.SendWindow, ErrSendRateLimited); err != nil {
		return nil, err
	}

	code, err := s.generate()
	if err != nil {
		return nil, ErrStorage.Wrap(fmt.Errorf("failed to generate code: %w", err))
	}

	if _, err := s.codes.DeleteUnverifiedByEmail(ctx, email); err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	record := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.cfg.CodeTTL),
		Verified:  false,
	}
	if err := s.codes.CreateCode(ctx, record); err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		// A code the user never received must not stay redeemable.
		if delErr := s.codes.DeleteCode(ctx, record.ID); delErr != nil {
			logger.FromContext(ctx).Error("failed to remove undelivered code", "id", record.ID, "error", delErr)
		}
		return nil, ErrMailFailed.Wrap(err)
	}

	logger.FromContext(ctx).Info("verification code sent", "email", email)
	return record, nil
}

func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return ErrCodeRequired
	}
	if addr, err := mail.ParseAddress(email); err == nil {
		email = normalizeEmail(addr.Address)
	}

	if err := s.allow(ctx, "verify:"+email, s.cfg.VerifyLimit, s.cfg.VerifyWindow, ErrVerifyRateLimited); err != nil {
		return err
	}

	record, err := s.codes.FindActive(ctx, email, code)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return ErrStorage.Wrap(err)
	}

	if record.Expired(s.now()) {
		if err := s.codes.DeleteCode(ctx, record.ID); err != nil {
			logger.FromContext(ctx).Error("failed to delete expired code", "id", record.ID, "error", err)
		}
		return ErrCodeExpired
	}

	ok, err := s.codes.MarkVerified(ctx, record.ID)
	if err != nil {
		return ErrStorage.Wrap(err)
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

// CleanupExpired deletes verified codes and codes past expiry.
func (s *VerificationService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.codes.DeleteStale(ctx, s.now())
}

func (s *VerificationService) allow(ctx context.Context, key string, limit int, window time.Duration, limited error) error {
	if s.limiter == nil || limit <= 0 {
		return nil
	}
	ok, err := s.limiter.Allow(ctx, key, limit, window)
	if err != nil {
		// Fail open.
		logger.FromContext(ctx).Warn("rate limiter unavailable", "key", key, "error", err)
		return nil
	}
	if !ok {
		return limited
	}
	return nil
}
