package models

type QuestionStatus string

const (
	QuestionOpen     QuestionStatus = "open"
	QuestionAnswered QuestionStatus = "answered"
	QuestionClosed   QuestionStatus = "closed"
)

type Question struct {
	Record
	AuthorID     string         `json:"author" gorm:"size:36;not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Content      string         `json:"content" gorm:"type:text"`
	Status       QuestionStatus `json:"status" gorm:"size:20;default:open"`
	AnswerCount  int            `json:"answer_count" gorm:"not null;default:0"`
	CuriousCount int            `json:"curious_count" gorm:"not null;default:0"`
	ViewCount    int            `json:"view_count" gorm:"not null;default:0"`
}

type CreateQuestionRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"max=5000"`
}
