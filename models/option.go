package models

type Option struct {
	ID         string `json:"id" gorm:"primaryKey"`
	QuestionID string `json:"questionId" gorm:"column:question_id;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"isCorrect" gorm:"column:is_correct;not null;default:false"`
	OrderIndex int    `json:"orderIndex" gorm:"column:order_index;not null"`
}
