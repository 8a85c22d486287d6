package models

type Question struct {
	ID         string `json:"id" gorm:"primaryKey"`
	QuizID     string `json:"quizId" gorm:"column:quiz_id;not null"`
	Text       string `json:"text" gorm:"not null"`
	OrderIndex int    `json:"orderIndex" gorm:"column:order_index;not null"`
	CreatedAt  string `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt  string `json:"updatedAt" gorm:"column:updated_at;not null"`

	// Relationships
	Options []Option `json:"options" gorm:"foreignKey:QuestionID"`
}
