package models

// Comment belongs to a community post. ParentCommentID is set for replies.
type Comment struct {
	Record
	PostID          string `json:"post" gorm:"size:64;not null;index"`
	AuthorID        string `json:"author" gorm:"size:36;not null;index"`
	Content         string `json:"content" gorm:"type:text;not null"`
	ParentCommentID string `json:"parent_comment,omitempty" gorm:"size:36"`
	LikeCount       int    `json:"like_count" gorm:"not null;default:0"`
}

type CreateCommentRequest struct {
	PostID          string `json:"post_id" validate:"required"`
	Content         string `json:"content" validate:"required,min=1,max=1000"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
}
