package models

type ResultAnswer struct {
	ID               string  `json:"id" gorm:"primaryKey"`
	ResultID         string  `json:"resultId" gorm:"column:result_id;not null"`
	QuestionID       string  `json:"questionId" gorm:"column:question_id;not null"`
	SelectedOptionID *string `json:"selectedOptionId" gorm:"column:selected_option_id"`
	CorrectOptionID  string  `json:"correctOptionId" gorm:"column:correct_option_id;not null"`
	IsCorrect        bool    `json:"isCorrect" gorm:"column:is_correct;not null"`
}
