package hooks

import (
	"context"
	"testing"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

type recorder struct{ calls []string }

func (r *recorder) HandleNotificationCreated(context.Context, *models.Notification) error {
	r.calls = append(r.calls, "notify:notification")
	return nil
}
func (r *recorder) HandleAnswerCreated(context.Context, *models.Answer) error {
	r.calls = append(r.calls, "answer")
	return nil
}
func (r *recorder) HandleCommentCreated(context.Context, *models.Comment) error {
	r.calls = append(r.calls, "comment")
	return nil
}
func (r *recorder) HandleFollowCreated(context.Context, *models.Follow) error {
	r.calls = append(r.calls, "notify:follow")
	return nil
}
func (r *recorder) HandleLikeCreated(context.Context, *models.Like) error {
	r.calls = append(r.calls, "like")
	return nil
}
func (r *recorder) HandleLikeDeleted(context.Context, *models.Like) error {
	r.calls = append(r.calls, "unlike")
	return nil
}
func (r *recorder) HandleCommentDeleted(context.Context, *models.Comment) error {
	r.calls = append(r.calls, "comment-deleted")
	return nil
}
func (r *recorder) HandleBookmarkCreated(context.Context, *models.Bookmark) error {
	r.calls = append(r.calls, "bookmark")
	return nil
}
func (r *recorder) HandleBookmarkDeleted(context.Context, *models.Bookmark) error {
	r.calls = append(r.calls, "unbookmark")
	return nil
}

func (r *recorder) HandleCuriousCreated(context.Context, *models.Curious) error {
	r.calls = append(r.calls, "curious")
	return nil
}
func (r *recorder) HandleCuriousDeleted(context.Context, *models.Curious) error {
	r.calls = append(r.calls, "uncurious")
	return nil
}

func TestRegisterRunsCountersBeforeNotifications(t *testing.T) {
	d := events.NewDispatcher()
	notifications := &recorder{}
	counters := &recorder{}
	Register(d, notifications, counters)

	ctx := context.Background()
	d.AfterCreate(ctx, models.CollectionLikes, &models.Like{})
	d.AfterDelete(ctx, models.CollectionLikes, &models.Like{})
	d.AfterCreate(ctx, models.CollectionFollows, &models.Follow{})

	assert.Equal(t, []string{"like", "unlike"}, counters.calls)
	assert.Equal(t, []string{"like", "notify:follow"}, notifications.calls)
}

func TestRegisterIgnoresUnboundCollections(t *testing.T) {
	d := events.NewDispatcher()
	notifications := &recorder{}
	counters := &recorder{}
	Register(d, notifications, counters)

	d.AfterDelete(context.Background(), models.CollectionFollows, &models.Follow{})
	d.AfterCreate(context.Background(), models.CollectionPosts, &models.Post{})

	assert.Empty(t, notifications.calls)
	assert.Empty(t, counters.calls)
}

func TestRegisterBindsCuriousCounters(t *testing.T) {
	d := events.NewDispatcher()
	notifications := &recorder{}
	counters := &recorder{}
	Register(d, notifications, counters)

	ctx := context.Background()
	d.AfterCreate(ctx, models.CollectionCurious, &models.Curious{})
	d.AfterDelete(ctx, models.CollectionCurious, &models.Curious{})

	assert.Equal(t, []string{"curious", "uncurious"}, counters.calls)
	assert.Empty(t, notifications.calls)
}
