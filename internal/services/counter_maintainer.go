package services

import (
	"context"
	"fmt"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
)

// CounterMaintainer keeps denormalized counters in step with the records
// that drive them. Every change goes through the storage-side atomic adjust.
type CounterMaintainer struct {
	counters repositories.CounterRepository
}

func NewCounterMaintainer(counters repositories.CounterRepository) *CounterMaintainer {
	return &CounterMaintainer{counters: counters}
}

// AdjustLikeCount applies delta (+1 or -1) to the target's like_count, never
// going below zero, and returns the new count.
func (m *CounterMaintainer) AdjustLikeCount(ctx context.Context, target models.Target, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, fmt.Errorf("like count delta must be +1 or -1, got %d", delta)
	}
	if _, err := target.LikeableCollection(); err != nil {
		return 0, err
	}

	count, err := m.counters.AtomicAdjust(ctx, target, repositories.FieldLikeCount, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust like_count on %s: %w", target, err)
	}
	return count, nil
}

func (m *CounterMaintainer) HandleLikeCreated(ctx context.Context, l *models.Like) error {
	_, err := m.AdjustLikeCount(ctx, l.Target(), 1)
	return err
}

func (m *CounterMaintainer) HandleLikeDeleted(ctx context.Context, l *models.Like) error {
	_, err := m.AdjustLikeCount(ctx, l.Target(), -1)
	return err
}

func (m *CounterMaintainer) HandleCommentCreated(ctx context.Context, c *models.Comment) error {
	return m.adjust(ctx, models.PostTarget(c.PostID), repositories.FieldCommentCount, 1)
}

func (m *CounterMaintainer) HandleCommentDeleted(ctx context.Context, c *models.Comment) error {
	return m.adjust(ctx, models.PostTarget(c.PostID), repositories.FieldCommentCount, -1)
}

func (m *CounterMaintainer) HandleAnswerCreated(ctx context.Context, a *models.Answer) error {
	return m.adjust(ctx, models.QuestionTarget(a.QuestionID), repositories.FieldAnswerCount, 1)
}

func (m *CounterMaintainer) HandleBookmarkCreated(ctx context.Context, b *models.Bookmark) error {
	return m.adjust(ctx, models.PostTarget(b.PostID), repositories.FieldBookmarkCount, 1)
}

func (m *CounterMaintainer) HandleBookmarkDeleted(ctx context.Context, b *models.Bookmark) error {
	return m.adjust(ctx, models.PostTarget(b.PostID), repositories.FieldBookmarkCount, -1)
}

func (m *CounterMaintainer) HandleCuriousCreated(ctx context.Context, c *models.Curious) error {
	return m.adjust(ctx, models.QuestionTarget(c.QuestionID), repositories.FieldCuriousCount, 1)
}

func (m *CounterMaintainer) HandleCuriousDeleted(ctx context.Context, c *models.Curious) error {
	return m.adjust(ctx, models.QuestionTarget(c.QuestionID), repositories.FieldCuriousCount, -1)
}

// IncrementView bumps view_count on a post or question.
func (m *CounterMaintainer) IncrementView(ctx context.Context, target models.Target) (int, error) {
	if target.Type != models.TargetPost && target.Type != models.TargetQuestion {
		return 0, fmt.Errorf("views are not counted on %s: %w", target.Type, models.ErrUnknownTargetType)
	}
	return m.counters.AtomicAdjust(ctx, target, repositories.FieldViewCount, 1)
}

func (m *CounterMaintainer) adjust(ctx context.Context, target models.Target, field string, delta int) error {
	if target.ID == "" {
		return nil
	}
	if _, err := m.counters.AtomicAdjust(ctx, target, field, delta); err != nil {
		return fmt.Errorf("failed to adjust %s on %s: %w", field, target, err)
	}
	return nil
}
