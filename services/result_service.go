package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcrafter/models"
)

// ResultService records completed play-throughs and serves playback history.
// Results are written once as a unit and never mutated afterwards.
type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// AnswerInput is one answered question of a play-through. A nil
// SelectedOptionID means the player left the question unanswered.
// CorrectOptionID is supplied by the caller and trusted as-is; the service
// does not re-check it against current option state.
type AnswerInput struct {
	QuestionID       string  `json:"questionId"`
	SelectedOptionID *string `json:"selectedOptionId"`
	CorrectOptionID  string  `json:"correctOptionId"`
}

type SaveResultsRequest struct {
	Answers []AnswerInput `json:"answers"`
}

// SaveResults scores the answers and inserts the result together with all
// its answer rows in one transaction.
func (s *ResultService) SaveResults(quizID string, req *SaveResultsRequest) (*models.Result, error) {
	if err := quizExists(s.db, quizID); err != nil {
		return nil, err
	}

	timestamp := nowISO()
	resultID := uuid.NewString()

	answers := make([]models.ResultAnswer, 0, len(req.Answers))
	correctCount := 0
	for _, input := range req.Answers {
		isCorrect := input.SelectedOptionID != nil && *input.SelectedOptionID == input.CorrectOptionID
		if isCorrect {
			correctCount++
		}
		answers = append(answers, models.ResultAnswer{
			ID:               uuid.NewString(),
			ResultID:         resultID,
			QuestionID:       input.QuestionID,
			SelectedOptionID: input.SelectedOptionID,
			CorrectOptionID:  input.CorrectOptionID,
			IsCorrect:        isCorrect,
		})
	}

	result := models.Result{
		ID:           resultID,
		QuizID:       quizID,
		CreatedAt:    timestamp,
		CorrectCount: correctCount,
		TotalCount:   len(answers),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Omit("Answers").Create(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(answers) > 0 {
		if err := tx.Create(&answers).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result.Answers = answers
	return &result, nil
}

// GetResultsSummary returns the most recent result with its answers plus
// the total attempt count. A quiz that was never played yields a summary
// with zero attempts and no result payload.
func (s *ResultService) GetResultsSummary(quizID string) (*models.ResultsSummary, error) {
	var last models.Result
	err := s.db.Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ResultsSummary{QuizID: quizID, AttemptCount: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	last.Answers = []models.ResultAnswer{}
	if err := s.db.Where("result_id = ?", last.ID).Find(&last.Answers).Error; err != nil {
		return nil, err
	}

	var attempts int64
	if err := s.db.Model(&models.Result{}).Where("quiz_id = ?", quizID).Count(&attempts).Error; err != nil {
		return nil, err
	}

	return &models.ResultsSummary{
		QuizID:       quizID,
		LastResult:   &last,
		AttemptCount: int(attempts),
	}, nil
}
