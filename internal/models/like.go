package models

// Like is unique per (user, target). Creating and deleting it drives the
// target's like_count.
type Like struct {
	Record
	UserID     string     `json:"user" gorm:"size:36;not null;uniqueIndex:idx_like_user_target"`
	TargetID   string     `json:"target_id" gorm:"size:64;not null;uniqueIndex:idx_like_user_target"`
	TargetType TargetType `json:"target_type" gorm:"size:20;not null;uniqueIndex:idx_like_user_target"`
}

func (l *Like) Target() Target {
	return Target{Type: l.TargetType, ID: l.TargetID}
}

type ToggleLikeRequest struct {
	TargetID   string `json:"target_id" validate:"required"`
	TargetType string `json:"target_type" validate:"required,oneof=post comment answer"`
}
