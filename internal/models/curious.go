package models

// Curious marks a question the user also wants answered. Its create/delete
// drive the question's curious_count.
type Curious struct {
	Record
	UserID     string `json:"user" gorm:"size:36;not null;uniqueIndex:idx_curious_user_question"`
	QuestionID string `json:"question" gorm:"size:36;not null;uniqueIndex:idx_curious_user_question"`
}

func (Curious) TableName() string { return CollectionCurious }

type ToggleCuriousRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
}
