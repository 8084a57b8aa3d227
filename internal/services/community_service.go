package services

import (
	"context"
	"errors"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
)

type CommunityRepositories struct {
	Users     repositories.UserRepository
	Posts     repositories.PostRepository
	Questions repositories.QuestionRepository
	Answers   repositories.AnswerRepository
	Comments  repositories.CommentRepository
	Likes     repositories.LikeRepository
	Follows   repositories.FollowRepository
	Bookmarks repositories.BookmarkRepository
	Curious   repositories.CuriousRepository
	Counters  repositories.CounterRepository
}

// CommunityService performs the community writes and fires their
// after-create and after-delete events. Notifications and counters are
// handled by the event subscribers, never inline.
type CommunityService struct {
	repos  CommunityRepositories
	events events.Publisher
}

func NewCommunityService(repos CommunityRepositories, publisher events.Publisher) *CommunityService {
	return &CommunityService{repos: repos, events: publisher}
}

type ToggleResult struct {
	Active bool
	Count  int
}

// ToggleLike likes the target, or unlikes it if the user already does.
func (s *CommunityService) ToggleLike(ctx context.Context, userID string, target models.Target) (ToggleResult, error) {
	if !target.Type.Likeable() || target.ID == "" {
		return ToggleResult{}, ErrInvalidTarget
	}
	if _, err := s.repos.Counters.Value(ctx, target, repositories.FieldLikeCount); err != nil {
		return ToggleResult{}, notFoundOr(err, ErrTargetNotFound)
	}

	existing, err := s.repos.Likes.GetLike(ctx, userID, target)
	switch {
	case err == nil:
		if err := s.repos.Likes.DeleteLike(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return ToggleResult{}, ErrStorage.Wrap(err)
		} else if err == nil {
			s.events.AfterDelete(ctx, models.CollectionLikes, existing)
		}
		return s.likeResult(ctx, target, false)

	case errors.Is(err, repositories.ErrNotFound):
		like := &models.Like{UserID: userID, TargetID: target.ID, TargetType: target.Type}
		if err := s.repos.Likes.CreateLike(ctx, like); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				// A concurrent request won the insert.
				return s.likeResult(ctx, target, true)
			}
			return ToggleResult{}, ErrStorage.Wrap(err)
		}
		s.events.AfterCreate(ctx, models.CollectionLikes, like)
		return s.likeResult(ctx, target, true)

	default:
		return ToggleResult{}, ErrStorage.Wrap(err)
	}
}

func (s *CommunityService) likeResult(ctx context.Context, target models.Target, liked bool) (ToggleResult, error) {
	count, err := s.repos.Counters.Value(ctx, target, repositories.FieldLikeCount)
	if err != nil {
		return ToggleResult{}, notFoundOr(err, ErrTargetNotFound)
	}
	return ToggleResult{Active: liked, Count: count}, nil
}

// ToggleFollow follows the user, or unfollows if already following.
func (s *CommunityService) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, ErrSelfFollow
	}
	if _, err := s.repos.Users.GetUserByID(ctx, followingID); err != nil {
		return false, notFoundOr(err, ErrUserNotFound)
	}

	existing, err := s.repos.Follows.GetFollow(ctx, followerID, followingID)
	switch {
	case err == nil:
		if err := s.repos.Follows.DeleteFollow(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return false, ErrStorage.Wrap(err)
		} else if err == nil {
			s.events.AfterDelete(ctx, models.CollectionFollows, existing)
		}
		return false, nil

	case errors.Is(err, repositories.ErrNotFound):
		follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := s.repos.Follows.CreateFollow(ctx, follow); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return true, nil
			}
			return false, ErrStorage.Wrap(err)
		}
		s.events.AfterCreate(ctx, models.CollectionFollows, follow)
		return true, nil

	default:
		return false, ErrStorage.Wrap(err)
	}
}

// ToggleBookmark saves the post, or removes the bookmark if already saved.
func (s *CommunityService) ToggleBookmark(ctx context.Context, userID, postID string) (ToggleResult, error) {
	target := models.PostTarget(postID)
	if _, err := s.repos.Counters.Value(ctx, target, repositories.FieldBookmarkCount); err != nil {
		return ToggleResult{}, notFoundOr(err, ErrPostNotFound)
	}

	active := false
	existing, err := s.repos.Bookmarks.GetBookmark(ctx, userID, postID)
	switch {
	case err == nil:
		if err := s.repos.Bookmarks.DeleteBookmark(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return ToggleResult{}, ErrStorage.Wrap(err)
		} else if err == nil {
			s.events.AfterDelete(ctx, models.CollectionBookmarks, existing)
		}
	case errors.Is(err, repositories.ErrNotFound):
		active = true
		bookmark := &models.Bookmark{UserID: userID, PostID: postID}
		if err := s.repos.Bookmarks.CreateBookmark(ctx, bookmark); err != nil {
			if !errors.Is(err, repositories.ErrDuplicate) {
				return ToggleResult{}, ErrStorage.Wrap(err)
			}
		} else {
			s.events.AfterCreate(ctx, models.CollectionBookmarks, bookmark)
		}
	default:
		return ToggleResult{}, ErrStorage.Wrap(err)
	}

	count, err := s.repos.Counters.Value(ctx, target, repositories.FieldBookmarkCount)
	if err != nil {
		return ToggleResult{}, notFoundOr(err, ErrPostNotFound)
	}
	return ToggleResult{Active: active, Count: count}, nil
}

// ToggleCurious marks the question as one the user also wants answered, or
// clears the mark if already set.
func (s *CommunityService) ToggleCurious(ctx context.Context, userID, questionID string) (ToggleResult, error) {
	target := models.QuestionTarget(questionID)
	if _, err := s.repos.Counters.Value(ctx, target, repositories.FieldCuriousCount); err != nil {
		return ToggleResult{}, notFoundOr(err, ErrQuestionNotFound)
	}

	active := false
	existing, err := s.repos.Curious.GetCurious(ctx, userID, questionID)
	switch {
	case err == nil:
		if err := s.repos.Curious.DeleteCurious(ctx, existing.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return ToggleResult{}, ErrStorage.Wrap(err)
		} else if err == nil {
			s.events.AfterDelete(ctx, models.CollectionCurious, existing)
		}
	case errors.Is(err, repositories.ErrNotFound):
		active = true
		curious := &models.Curious{UserID: userID, QuestionID: questionID}
		if err := s.repos.Curious.CreateCurious(ctx, curious); err != nil {
			if !errors.Is(err, repositories.ErrDuplicate) {
				return ToggleResult{}, ErrStorage.Wrap(err)
			}
		} else {
			s.events.AfterCreate(ctx, models.CollectionCurious, curious)
		}
	default:
		return ToggleResult{}, ErrStorage.Wrap(err)
	}

	count, err := s.repos.Counters.Value(ctx, target, repositories.FieldCuriousCount)
	if err != nil {
		return ToggleResult{}, notFoundOr(err, ErrQuestionNotFound)
	}
	return ToggleResult{Active: active, Count: count}, nil
}

func (s *CommunityService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{AuthorID: authorID, Content: req.Content, ImageURLs: req.ImageURLs}
	if err := s.repos.Posts.CreatePost(ctx, post); err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	s.events.AfterCreate(ctx, models.CollectionPosts, post)
	return post, nil
}

func (s *CommunityService) CreateQuestion(ctx context.Context, authorID string, req models.CreateQuestionRequest) (*models.Question, error) {
	question := &models.Question{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Status:   models.QuestionOpen,
	}
	if err := s.repos.Questions.CreateQuestion(ctx, question); err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	s.events.AfterCreate(ctx, models.CollectionQuestions, question)
	return question, nil
}

func (s *CommunityService) CreateComment(ctx context.Context, authorID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.repos.Posts.GetPostByID(ctx, req.PostID); err != nil {
		return nil, notFoundOr(err, ErrPostNotFound)
	}
	if req.ParentCommentID != "" {
		parent, err := s.repos.Comments.GetCommentByID(ctx, req.ParentCommentID)
		if err != nil {
			return nil, notFoundOr(err, ErrCommentNotFound)
		}
		if parent.PostID != req.PostID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		PostID:          req.PostID,
		AuthorID:        authorID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}
	if err := s.repos.Comments.CreateComment(ctx, comment); err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	s.events.AfterCreate(ctx, models.CollectionComments, comment)
	return comment, nil
}

// DeleteComment removes the caller's own comment.
func (s *CommunityService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.repos.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, ErrCommentNotFound)
	}
	if comment.AuthorID != userID {
		return ErrNotCommentAuthor
	}

	if err := s.repos.Comments.DeleteComment(ctx, commentID); err != nil {
		return notFoundOr(err, ErrCommentNotFound)
	}
	s.events.AfterDelete(ctx, models.CollectionComments, comment)
	return nil
}

func (s *CommunityService) CreateAnswer(ctx context.Context, authorID string, req models.CreateAnswerRequest) (*models.Answer, error) {
	if _, err := s.repos.Questions.GetQuestionByID(ctx, req.QuestionID); err != nil {
		return nil, notFoundOr(err, ErrQuestionNotFound)
	}

	answer := &models.Answer{QuestionID: req.QuestionID, AuthorID: authorID, Content: req.Content}
	if err := s.repos.Answers.CreateAnswer(ctx, answer); err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	s.events.AfterCreate(ctx, models.CollectionAnswers, answer)
	return answer, nil
}

// AcceptAnswer lets the question's author accept someone else's answer.
// Any previously accepted answer on the question is un-accepted.
func (s *CommunityService) AcceptAnswer(ctx context.Context, userID, answerID string) (*models.Answer, error) {
	answer, err := s.repos.Answers.GetAnswerByID(ctx, answerID)
	if err != nil {
		return nil, notFoundOr(err, ErrAnswerNotFound)
	}
	question, err := s.repos.Questions.GetQuestionByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, notFoundOr(err, ErrQuestionNotFound)
	}
	if question.AuthorID != userID {
		return nil, ErrNotQuestionOwner
	}
	if answer.AuthorID == userID {
		return nil, ErrCannotAcceptOwn
	}

	if err := s.repos.Answers.AcceptAnswer(ctx, question.ID, answer.ID); err != nil {
		return nil, notFoundOr(err, ErrAnswerNotFound)
	}
	answer.IsAccepted = true
	return answer, nil
}

func notFoundOr(err, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return ErrStorage.Wrap(err)
}
