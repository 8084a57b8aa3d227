package models

// Bookmark marks a community post as saved by a user. Its create/delete drive
// the post's bookmark_count.
type Bookmark struct {
	Record
	UserID string `json:"user" gorm:"size:36;not null;uniqueIndex:idx_bookmark_user_post"`
	PostID string `json:"post" gorm:"size:64;not null;uniqueIndex:idx_bookmark_user_post"`
}

type ToggleBookmarkRequest struct {
	PostID string `json:"post_id" validate:"required"`
}

type IncrementViewRequest struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type" validate:"required,oneof=post question"`
}
