package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySuppressesSelfNotification(t *testing.T) {
	h := newHarness()
	alice := h.addUser("Alice", "tok-a")

	n, err := h.emitter.Notify(context.Background(), NotifyParams{
		RecipientID: alice.ID,
		Type:        models.NotificationSystem,
		Title:       "t",
		Message:     "m",
		ActorID:     alice.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Empty(t, h.store.notificationsFor(alice.ID))
	assert.Empty(t, h.queue.jobs)
}

func TestNotifyWithoutRecipientIsSilent(t *testing.T) {
	h := newHarness()
	n, err := h.emitter.Notify(context.Background(), NotifyParams{Type: models.NotificationSystem, ActorID: "x"})
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestAnswerCreatedNotifiesQuestionAuthor(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "tok-a")
	bob := h.addUser("Bob", "")

	q, err := h.community.CreateQuestion(ctx, alice.ID, models.CreateQuestionRequest{Title: "Cloudy water?"})
	require.NoError(t, err)

	_, err = h.community.CreateAnswer(ctx, bob.ID, models.CreateAnswerRequest{QuestionID: q.ID, Content: "Bacterial bloom"})
	require.NoError(t, err)

	got := h.store.notificationsFor(alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationAnswer, got[0].Type)
	assert.Equal(t, bob.ID, got[0].ActorID)
	assert.Equal(t, q.ID, got[0].TargetID)
	assert.Equal(t, models.TargetQuestion, got[0].TargetType)
	assert.Equal(t, "새 답변", got[0].Title)
	assert.False(t, got[0].IsRead)

	require.Len(t, h.queue.jobs, 1)
	job := h.queue.jobs[0]
	assert.Equal(t, "tok-a", job.Token)
	assert.Equal(t, "answer", job.Data[push.DataType])
	assert.Equal(t, got[0].ID, job.Data[push.DataNotificationID])
	assert.Equal(t, 1, q.AnswerCount)
}

func TestOwnAnswerCreatesNoNotification(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "tok-a")

	q, err := h.community.CreateQuestion(ctx, alice.ID, models.CreateQuestionRequest{Title: "Nitrite spike"})
	require.NoError(t, err)
	_, err = h.community.CreateAnswer(ctx, alice.ID, models.CreateAnswerRequest{QuestionID: q.ID, Content: "Solved it"})
	require.NoError(t, err)

	assert.Empty(t, h.store.notificationsFor(alice.ID))
}

func TestRecipientWithoutTokenGetsNoPush(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "")
	bob := h.addUser("Bob", "")

	post, err := h.community.CreatePost(ctx, alice.ID, models.CreatePostRequest{Content: "New tank"})
	require.NoError(t, err)
	_, err = h.community.CreateComment(ctx, bob.ID, models.CreateCommentRequest{PostID: post.ID.Hex(), Content: "Nice!"})
	require.NoError(t, err)

	got := h.store.notificationsFor(alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationComment, got[0].Type)
	assert.Equal(t, models.TargetPost, got[0].TargetType)
	assert.Empty(t, h.queue.jobs)
	assert.Equal(t, 1, post.CommentCount)
}

func TestPushFailureKeepsNotification(t *testing.T) {
	h := newHarness()
	h.queue.err = push.ErrQueueFull
	ctx := context.Background()
	alice := h.addUser("Alice", "tok-a")
	bob := h.addUser("Bob", "")

	_, err := h.community.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, h.store.notificationsFor(alice.ID), 1)
}

func TestFollowNotificationUsesFollowerName(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "")
	anonymous := h.addUser("", "")

	following, err := h.community.ToggleFollow(ctx, anonymous.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	got := h.store.notificationsFor(alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "회원님이 회원님을 팔로우합니다.", got[0].Message)
	assert.Equal(t, anonymous.ID, got[0].TargetID)
	assert.Equal(t, models.TargetUser, got[0].TargetType)
}

func TestLikeNotificationRedirectsToParent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "")
	bob := h.addUser("Bob", "")

	post, err := h.community.CreatePost(ctx, bob.ID, models.CreatePostRequest{Content: "Shrimp colony"})
	require.NoError(t, err)
	comment, err := h.community.CreateComment(ctx, alice.ID, models.CreateCommentRequest{PostID: post.ID.Hex(), Content: "Love it"})
	require.NoError(t, err)

	q, err := h.community.CreateQuestion(ctx, bob.ID, models.CreateQuestionRequest{Title: "Best substrate?"})
	require.NoError(t, err)
	answer, err := h.community.CreateAnswer(ctx, alice.ID, models.CreateAnswerRequest{QuestionID: q.ID, Content: "Aqua soil"})
	require.NoError(t, err)

	_, err = h.community.ToggleLike(ctx, bob.ID, models.CommentTarget(comment.ID))
	require.NoError(t, err)
	_, err = h.community.ToggleLike(ctx, bob.ID, models.AnswerTarget(answer.ID))
	require.NoError(t, err)

	got := h.store.notificationsFor(alice.ID)
	require.Len(t, got, 2)

	assert.Equal(t, models.NotificationLike, got[0].Type)
	assert.Equal(t, models.TargetPost, got[0].TargetType)
	assert.Equal(t, post.ID.Hex(), got[0].TargetID)
	assert.Equal(t, "Bob님이 회원님의 댓글을 좋아합니다.", got[0].Message)

	assert.Equal(t, models.TargetQuestion, got[1].TargetType)
	assert.Equal(t, q.ID, got[1].TargetID)
	assert.Equal(t, "Bob님이 회원님의 답변을 좋아합니다.", got[1].Message)
}

func TestLikeOnPostIsNotRedirected(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	alice := h.addUser("Alice", "")
	bob := h.addUser("Bob", "")

	post, err := h.community.CreatePost(ctx, alice.ID, models.CreatePostRequest{Content: "Betta"})
	require.NoError(t, err)
	_, err = h.community.ToggleLike(ctx, bob.ID, models.PostTarget(post.ID.Hex()))
	require.NoError(t, err)

	got := h.store.notificationsFor(alice.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.TargetPost, got[0].TargetType)
	assert.Equal(t, post.ID.Hex(), got[0].TargetID)
}

func TestMissingParentAbortsWithoutNotification(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	err := h.emitter.HandleAnswerCreated(ctx, &models.Answer{QuestionID: "gone", AuthorID: "bob"})
	assert.Error(t, err)

	err = h.emitter.HandleLikeCreated(ctx, &models.Like{UserID: "bob", TargetID: "gone", TargetType: models.TargetComment})
	assert.Error(t, err)

	err = h.emitter.HandleLikeCreated(ctx, &models.Like{UserID: "bob", TargetID: "x", TargetType: models.TargetUser})
	assert.True(t, errors.Is(err, models.ErrUnknownTargetType))

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	assert.Empty(t, h.store.notifications)
}

func TestNotificationStorageErrorIsReturned(t *testing.T) {
	h := newHarness()
	h.emitter.repos.Notifications = fakeNotifications{s: h.store, err: errors.New("disk full")}

	_, err := h.emitter.Notify(context.Background(), NotifyParams{RecipientID: "a", ActorID: "b", Type: models.NotificationSystem})
	assert.Error(t, err)
}
