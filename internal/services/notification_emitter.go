package services

import (
	"context"
	"fmt"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/push"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/pkg/logger"
)

// NotifyParams describes one notification. Target is optional.
type NotifyParams struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Message     string
	Target      models.Target
	ActorID     string
}

type EmitterRepositories struct {
	Notifications repositories.NotificationRepository
	Users         repositories.UserRepository
	Questions     repositories.QuestionRepository
	Answers       repositories.AnswerRepository
	Comments      repositories.CommentRepository
	Posts         repositories.PostRepository
}

// NotificationEmitter turns domain events into notification records and
// queues a push for each stored notification.
type NotificationEmitter struct {
	repos  EmitterRepositories
	events events.Publisher
	queue  push.Queue
}

func NewNotificationEmitter(repos EmitterRepositories, publisher events.Publisher, queue push.Queue) *NotificationEmitter {
	return &NotificationEmitter{repos: repos, events: publisher, queue: queue}
}

// Notify stores a notification and fires its after-create event. It returns
// nil, nil when there is no recipient or the actor is the recipient.
func (e *NotificationEmitter) Notify(ctx context.Context, p NotifyParams) (*models.Notification, error) {
	if p.RecipientID == "" {
		logger.FromContext(ctx).Warn("notification without recipient skipped", "type", p.Type)
		return nil, nil
	}
	if p.ActorID == p.RecipientID {
		return nil, nil
	}

	n := &models.Notification{
		UserID:     p.RecipientID,
		Type:       p.Type,
		Title:      p.Title,
		Message:    p.Message,
		TargetID:   p.Target.ID,
		TargetType: p.Target.Type,
		IsRead:     false,
		ActorID:    p.ActorID,
	}
	if p.Target.ID == "" {
		n.TargetType = ""
	}

	if err := e.repos.Notifications.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create %s notification: %w", p.Type, err)
	}

	e.events.AfterCreate(ctx, models.CollectionNotifications, n)
	return n, nil
}

// HandleNotificationCreated queues a push to the recipient's registered device.
func (e *NotificationEmitter) HandleNotificationCreated(ctx context.Context, n *models.Notification) error {
	user, err := e.repos.Users.GetUserByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("failed to load recipient %s: %w", n.UserID, err)
	}
	if user.FCMToken == "" {
		return nil
	}

	job := push.Job{
		Token: user.FCMToken,
		Title: n.Title,
		Body:  n.Message,
		Data: map[string]string{
			push.DataType:           string(n.Type),
			push.DataTargetID:       n.TargetID,
			push.DataTargetType:     string(n.TargetType),
			push.DataNotificationID: n.ID,
		},
	}
	if err := e.queue.Enqueue(ctx, job); err != nil {
		logger.FromContext(ctx).Warn("push not queued", "notification_id", n.ID, "error", err)
	}
	return nil
}

func (e *NotificationEmitter) HandleAnswerCreated(ctx context.Context, a *models.Answer) error {
	if a.QuestionID == "" {
		return nil
	}
	question, err := e.repos.Questions.GetQuestionByID(ctx, a.QuestionID)
	if err != nil {
		return fmt.Errorf("failed to load question %s: %w", a.QuestionID, err)
	}

	_, err = e.Notify(ctx, NotifyParams{
		RecipientID: question.AuthorID,
		Type:        models.NotificationAnswer,
		Title:       "새 답변",
		Message:     "회원님의 질문에 새 답변이 달렸습니다.",
		Target:      models.QuestionTarget(question.ID),
		ActorID:     a.AuthorID,
	})
	return err
}

func (e *NotificationEmitter) HandleCommentCreated(ctx context.Context, c *models.Comment) error {
	if c.PostID == "" {
		return nil
	}
	post, err := e.repos.Posts.GetPostByID(ctx, c.PostID)
	if err != nil {
		return fmt.Errorf("failed to load post %s: %w", c.PostID, err)
	}

	_, err = e.Notify(ctx, NotifyParams{
		RecipientID: post.AuthorID,
		Type:        models.NotificationComment,
		Title:       "새 댓글",
		Message:     "회원님의 게시글에 새 댓글이 달렸습니다.",
		Target:      models.PostTarget(c.PostID),
		ActorID:     c.AuthorID,
	})
	return err
}

func (e *NotificationEmitter) HandleFollowCreated(ctx context.Context, f *models.Follow) error {
	if f.FollowerID == "" || f.FollowingID == "" {
		return nil
	}

	_, err := e.Notify(ctx, NotifyParams{
		RecipientID: f.FollowingID,
		Type:        models.NotificationFollow,
		Title:       "새 팔로워",
		Message:     e.displayName(ctx, f.FollowerID) + "님이 회원님을 팔로우합니다.",
		Target:      models.UserTarget(f.FollowerID),
		ActorID:     f.FollowerID,
	})
	return err
}

// HandleLikeCreated notifies the liked item's author. Likes on comments and
// answers point the notification at the parent post or question.
func (e *NotificationEmitter) HandleLikeCreated(ctx context.Context, l *models.Like) error {
	liked, err := e.resolveLiked(ctx, l.Target())
	if err != nil {
		return err
	}
	if liked.authorID == "" || liked.authorID == l.UserID {
		return nil
	}

	_, err = e.Notify(ctx, NotifyParams{
		RecipientID: liked.authorID,
		Type:        models.NotificationLike,
		Title:       "좋아요",
		Message:     fmt.Sprintf("%s님이 회원님의 %s을 좋아합니다.", e.displayName(ctx, l.UserID), liked.noun),
		Target:      liked.redirect,
		ActorID:     l.UserID,
	})
	return err
}

type likedItem struct {
	authorID string
	redirect models.Target
	noun     string
}

func (e *NotificationEmitter) resolveLiked(ctx context.Context, target models.Target) (likedItem, error) {
	switch target.Type {
	case models.TargetPost:
		post, err := e.repos.Posts.GetPostByID(ctx, target.ID)
		if err != nil {
			return likedItem{}, fmt.Errorf("failed to load liked post %s: %w", target.ID, err)
		}
		return likedItem{authorID: post.AuthorID, redirect: target, noun: "게시글"}, nil

	case models.TargetComment:
		comment, err := e.repos.Comments.GetCommentByID(ctx, target.ID)
		if err != nil {
			return likedItem{}, fmt.Errorf("failed to load liked comment %s: %w", target.ID, err)
		}
		redirect := target
		if comment.PostID != "" {
			redirect = models.PostTarget(comment.PostID)
		}
		return likedItem{authorID: comment.AuthorID, redirect: redirect, noun: "댓글"}, nil

	case models.TargetAnswer:
		answer, err := e.repos.Answers.GetAnswerByID(ctx, target.ID)
		if err != nil {
			return likedItem{}, fmt.Errorf("failed to load liked answer %s: %w", target.ID, err)
		}
		redirect := target
		if answer.QuestionID != "" {
			redirect = models.QuestionTarget(answer.QuestionID)
		}
		return likedItem{authorID: answer.AuthorID, redirect: redirect, noun: "답변"}, nil

	default:
		return likedItem{}, fmt.Errorf("like on %s: %w", target, models.ErrUnknownTargetType)
	}
}

// displayName never fails; an unknown user reads as the generic member label.
func (e *NotificationEmitter) displayName(ctx context.Context, userID string) string {
	user, err := e.repos.Users.GetUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Debug("actor lookup failed, using fallback name", "actor", userID, "error", err)
		return (*models.User)(nil).DisplayName()
	}
	return user.DisplayName()
}
