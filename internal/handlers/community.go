package handlers

import (
	"context"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/services"
)

// Community is the write side used by the community handlers.
type Community interface {
	ToggleLike(ctx context.Context, userID string, target models.Target) (services.ToggleResult, error)
	ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)
	ToggleBookmark(ctx context.Context, userID, postID string) (services.ToggleResult, error)
	ToggleCurious(ctx context.Context, userID, questionID string) (services.ToggleResult, error)
	CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error)
	CreateQuestion(ctx context.Context, authorID string, req models.CreateQuestionRequest) (*models.Question, error)
	CreateComment(ctx context.Context, authorID string, req models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
	CreateAnswer(ctx context.Context, authorID string, req models.CreateAnswerRequest) (*models.Answer, error)
	AcceptAnswer(ctx context.Context, userID, answerID string) (*models.Answer, error)
}

type ViewCounter interface {
	IncrementView(ctx context.Context, target models.Target) (int, error)
}

// Reader serves the read-only community views.
type Reader interface {
	ListQuestions(ctx context.Context, userID string, opts repositories.QuestionListOptions) ([]models.QuestionListItem, int64, error)
	CommentTree(ctx context.Context, postID string, limit int) ([]*models.CommentNode, int, error)
	Trending(ctx context.Context, window string, page, perPage int) ([]models.FeedItem, error)
	Search(ctx context.Context, query, recordType string, page, perPage int) ([]models.SearchResult, error)
}
