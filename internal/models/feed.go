package models

import "time"

// QuestionListItem is a question annotated for the requesting user.
type QuestionListItem struct {
	Question
	IsCurious bool `json:"is_curious"`
}

// CommentNode is a comment with its replies nested beneath it.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// FeedItem is a post or question ranked in the trending feed.
type FeedItem struct {
	ID           string     `json:"id"`
	Type         TargetType `json:"type"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	AuthorID     string     `json:"author"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	ViewCount    int        `json:"view_count"`
	Score        float64    `json:"score"`
	CreatedAt    time.Time  `json:"created_at"`
}

type SearchResult struct {
	ID        string     `json:"id"`
	Type      TargetType `json:"type"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet"`
	CreatedAt time.Time  `json:"created_at"`
}
