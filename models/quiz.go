package models

type Quiz struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt   string  `json:"updatedAt" gorm:"column:updated_at;not null"`

	// Relationships
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID"`
}

// QuizSummary is the list/update view of a quiz with a derived question count.
type QuizSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	QuestionCount int     `json:"questionCount"`
}
