package models

type Answer struct {
	Record
	QuestionID string `json:"question" gorm:"size:36;not null;index"`
	AuthorID   string `json:"author" gorm:"size:36;not null;index"`
	Content    string `json:"content" gorm:"type:text;not null"`
	LikeCount  int    `json:"like_count" gorm:"not null;default:0"`
	IsAccepted bool   `json:"is_accepted" gorm:"default:false"`
}

type CreateAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
}

type AcceptAnswerRequest struct {
	AnswerID string `json:"answer_id" validate:"required"`
}
