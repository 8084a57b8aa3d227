// Package hooks binds notification and counter handlers to record store events.
package hooks

import (
	"context"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/models"
)

type Registrar interface {
	OnAfterCreate(collection string, h events.Handler)
	OnAfterDelete(collection string, h events.Handler)
}

type NotificationHandlers interface {
	HandleNotificationCreated(ctx context.Context, n *models.Notification) error
	HandleAnswerCreated(ctx context.Context, a *models.Answer) error
	HandleCommentCreated(ctx context.Context, c *models.Comment) error
	HandleFollowCreated(ctx context.Context, f *models.Follow) error
	HandleLikeCreated(ctx context.Context, l *models.Like) error
}

type CounterHandlers interface {
	HandleLikeCreated(ctx context.Context, l *models.Like) error
	HandleLikeDeleted(ctx context.Context, l *models.Like) error
	HandleCommentCreated(ctx context.Context, c *models.Comment) error
	HandleCommentDeleted(ctx context.Context, c *models.Comment) error
	HandleAnswerCreated(ctx context.Context, a *models.Answer) error
	HandleBookmarkCreated(ctx context.Context, b *models.Bookmark) error
	HandleBookmarkDeleted(ctx context.Context, b *models.Bookmark) error
	HandleCuriousCreated(ctx context.Context, c *models.Curious) error
	HandleCuriousDeleted(ctx context.Context, c *models.Curious) error
}

// Register wires the handlers. On a shared collection the counter handler is
// registered first.
func Register(r Registrar, notifications NotificationHandlers, counters CounterHandlers) {
	r.OnAfterCreate(models.CollectionNotifications, events.Typed(notifications.HandleNotificationCreated))

	r.OnAfterCreate(models.CollectionAnswers, events.Typed(counters.HandleAnswerCreated))
	r.OnAfterCreate(models.CollectionAnswers, events.Typed(notifications.HandleAnswerCreated))

	r.OnAfterCreate(models.CollectionComments, events.Typed(counters.HandleCommentCreated))
	r.OnAfterCreate(models.CollectionComments, events.Typed(notifications.HandleCommentCreated))
	r.OnAfterDelete(models.CollectionComments, events.Typed(counters.HandleCommentDeleted))

	r.OnAfterCreate(models.CollectionFollows, events.Typed(notifications.HandleFollowCreated))

	r.OnAfterCreate(models.CollectionLikes, events.Typed(counters.HandleLikeCreated))
	r.OnAfterCreate(models.CollectionLikes, events.Typed(notifications.HandleLikeCreated))
	r.OnAfterDelete(models.CollectionLikes, events.Typed(counters.HandleLikeDeleted))

	r.OnAfterCreate(models.CollectionBookmarks, events.Typed(counters.HandleBookmarkCreated))
	r.OnAfterDelete(models.CollectionBookmarks, events.Typed(counters.HandleBookmarkDeleted))

	r.OnAfterCreate(models.CollectionCurious, events.Typed(counters.HandleCuriousCreated))
	r.OnAfterDelete(models.CollectionCurious, events.Typed(counters.HandleCuriousDeleted))
}
