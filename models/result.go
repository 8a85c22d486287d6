package models

// Result records one completed play-through. Rows are write-once: they are
// inserted together with their answers and never updated.
type Result struct {
	ID           string `json:"id" gorm:"primaryKey"`
	QuizID       string `json:"quizId" gorm:"column:quiz_id;not null"`
	CreatedAt    string `json:"createdAt" gorm:"column:created_at;not null"`
	CorrectCount int    `json:"correctCount" gorm:"column:correct_count;not null"`
	TotalCount   int    `json:"totalCount" gorm:"column:total_count;not null"`

	// Relationships
	Answers []ResultAnswer `json:"answers" gorm:"foreignKey:ResultID"`
}

// ResultsSummary is the playback-history view for a quiz. LastResult is nil
// when the quiz has never been played; that is a valid state, not an error.
type ResultsSummary struct {
	QuizID       string  `json:"quizId"`
	LastResult   *Result `json:"lastResult,omitempty"`
	AttemptCount int     `json:"attemptCount"`
}
