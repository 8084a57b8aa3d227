package models

// Follow represents a follower relationship between two users
type Follow struct {
	Record
	FollowerID  string `json:"follower" gorm:"size:36;not null;uniqueIndex:idx_follow_pair"`
	FollowingID string `json:"following" gorm:"size:36;not null;uniqueIndex:idx_follow_pair;index"`
}

type ToggleFollowRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
