package services

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
)

var trendingWindows = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

const (
	defaultTrendingWindow = "7d"
	// trendingScanLimit caps how many recent records of each kind are ranked.
	trendingScanLimit = 500
	snippetRadius     = 32
)

type ReaderRepositories struct {
	Posts     repositories.PostRepository
	Questions repositories.QuestionRepository
	Comments  repositories.CommentRepository
	Curious   repositories.CuriousRepository
}

// CommunityReader serves the read-only community views: question listings,
// comment trees, the trending feed and search.
type CommunityReader struct {
	repos ReaderRepositories
	now   func() time.Time
}

func NewCommunityReader(repos ReaderRepositories) *CommunityReader {
	return &CommunityReader{repos: repos, now: time.Now}
}

// ListQuestions pages questions and marks the ones userID is curious about.
func (r *CommunityReader) ListQuestions(ctx context.Context, userID string, opts repositories.QuestionListOptions) ([]models.QuestionListItem, int64, error) {
	questions, total, err := r.repos.Questions.ListQuestions(ctx, opts)
	if err != nil {
		return nil, 0, ErrStorage.Wrap(err)
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	marked, err := r.repos.Curious.CuriousQuestionIDs(ctx, userID, ids)
	if err != nil {
		return nil, 0, ErrStorage.Wrap(err)
	}

	items := make([]models.QuestionListItem, len(questions))
	for i, q := range questions {
		items[i] = models.QuestionListItem{Question: q, IsCurious: marked[q.ID]}
	}
	return items, total, nil
}

// CommentTree returns the post's first limit comments, oldest first, nested
// under their parents. It also returns how many comments the tree holds.
func (r *CommunityReader) CommentTree(ctx context.Context, postID string, limit int) ([]*models.CommentNode, int, error) {
	if _, err := r.repos.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, 0, notFoundOr(err, ErrPostNotFound)
	}
	comments, err := r.repos.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, 0, ErrStorage.Wrap(err)
	}
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return BuildCommentTree(comments), len(comments), nil
}

// BuildCommentTree nests replies under their parents, keeping input order
// among siblings. A reply whose parent is absent becomes a root.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &models.CommentNode{Comment: comments[i], Replies: []*models.CommentNode{}}
	}

	roots := []*models.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		parentID := comments[i].ParentCommentID
		if parent, ok := nodes[parentID]; ok && parentID != "" && parent != node {
			parent.Replies = append(parent.Replies, node)
			continue
		}
		roots = append(roots, node)
	}
	return roots
}

// Trending ranks recent posts and questions by engagement, decayed by age
// relative to the window ("24h", "7d" or "30d"; anything else means "7d").
func (r *CommunityReader) Trending(ctx context.Context, window string, page, perPage int) ([]models.FeedItem, error) {
	span, ok := trendingWindows[window]
	if !ok {
		span = trendingWindows[defaultTrendingWindow]
	}
	now := r.now()
	since := now.Add(-span)

	posts, err := r.repos.Posts.GetPostsSince(ctx, since, trendingScanLimit)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	questions, err := r.repos.Questions.GetQuestionsSince(ctx, since, trendingScanLimit)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	items := make([]models.FeedItem, 0, len(posts)+len(questions))
	for _, p := range posts {
		raw := float64(p.LikeCount)*3 + float64(p.CommentCount)*2 + float64(p.BookmarkCount)*1.5
		items = append(items, models.FeedItem{
			ID:           p.ID.Hex(),
			Type:         models.TargetPost,
			Content:      p.Content,
			AuthorID:     p.AuthorID,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			ViewCount:    p.ViewCount,
			Score:        decayed(raw, now.Sub(p.CreatedAt), span),
			CreatedAt:    p.CreatedAt,
		})
	}
	for _, q := range questions {
		raw := float64(q.AnswerCount)*3 + float64(q.ViewCount)*0.5 + float64(q.CuriousCount)*2
		items = append(items, models.FeedItem{
			ID:           q.ID,
			Type:         models.TargetQuestion,
			Title:        q.Title,
			Content:      q.Content,
			AuthorID:     q.AuthorID,
			CommentCount: q.AnswerCount,
			ViewCount:    q.ViewCount,
			Score:        decayed(raw, now.Sub(q.CreatedAt), span),
			CreatedAt:    q.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return paginate(items, page, perPage), nil
}

func decayed(raw float64, age, span time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return raw / (1 + age.Hours()/span.Hours())
}

// Search finds posts and questions containing query, newest first.
// recordType "post" or "question" restricts the kind; anything else searches both.
func (r *CommunityReader) Search(ctx context.Context, query, recordType string, page, perPage int) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}
	if page < 1 {
		page = 1
	}
	fetch := page * perPage

	var results []models.SearchResult
	if recordType != string(models.TargetPost) {
		questions, err := r.repos.Questions.SearchQuestions(ctx, query, fetch)
		if err != nil {
			return nil, ErrStorage.Wrap(err)
		}
		for _, q := range questions {
			text := q.Content
			if containsFold(q.Title, query) && !containsFold(q.Content, query) {
				text = q.Title
			}
			results = append(results, models.SearchResult{
				ID:        q.ID,
				Type:      models.TargetQuestion,
				Title:     q.Title,
				Snippet:   snippet(text, query),
				CreatedAt: q.CreatedAt,
			})
		}
	}
	if recordType != string(models.TargetQuestion) {
		posts, err := r.repos.Posts.SearchPosts(ctx, query, int64(fetch))
		if err != nil {
			return nil, ErrStorage.Wrap(err)
		}
		for _, p := range posts {
			results = append(results, models.SearchResult{
				ID:        p.ID.Hex(),
				Type:      models.TargetPost,
				Snippet:   snippet(p.Content, query),
				CreatedAt: p.CreatedAt,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return paginate(results, page, perPage), nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// snippet cuts the text around the first match of query, marking cut ends with "...".
func snippet(text, query string) string {
	runes := []rune(text)
	lower := strings.ToLower(text)

	at := 0
	if utf8.RuneCountInString(lower) == len(runes) {
		if i := strings.Index(lower, strings.ToLower(query)); i >= 0 {
			at = utf8.RuneCountInString(lower[:i])
		}
	}

	start := max(0, at-snippetRadius)
	end := min(len(runes), at+utf8.RuneCountInString(query)+snippetRadius)
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}

func paginate[T any](items []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if perPage <= 0 || start >= len(items) {
		return []T{}
	}
	return items[start:min(start+perPage, len(items))]
}
