package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizcrafter/models"
)

// QuizService owns all reads and writes for quizzes, questions and options.
// Every mutating operation is a single transaction: either the full set of
// changes lands or none does.
type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type UpdateQuizRequest struct {
	Title string `json:"title"`
	// Description distinguishes "omitted" (keep stored value) from
	// "explicitly null" (clear it).
	Description models.OptionalString `json:"description"`
}

// OptionInput carries one option of a save-question payload. An empty ID
// means a brand-new option; a non-empty ID that matches a stored option is
// an in-place update; a non-empty ID with no match is inserted under that
// id so clients may generate their own ids.
type OptionInput struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
	OrderIndex int    `json:"orderIndex"`
}

type SaveQuestionRequest struct {
	QuestionID string        `json:"questionId"`
	Text       string        `json:"text"`
	Options    []OptionInput `json:"options"`
}

// Timestamps are fixed-width ISO-8601 so lexicographic order in TEXT
// columns matches chronological order (RFC3339Nano trims trailing zeros,
// which breaks that).
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// ListQuizzes returns every quiz with its derived question count, most
// recently touched first. One query; no per-quiz counting.
func (s *QuizService) ListQuizzes() ([]models.QuizSummary, error) {
	summaries := []models.QuizSummary{}
	err := s.db.Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.description, quizzes.created_at, quizzes.updated_at, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Group("quizzes.id").
		Order("quizzes.updated_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

// GetQuiz loads one quiz with its questions and options in display order.
// Options are preloaded in a single batched query across all questions.
func (s *QuizService) GetQuiz(quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index")
		}).
		First(&quiz, "id = ?", quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].Options == nil {
			quiz.Questions[i].Options = []models.Option{}
		}
	}
	return &quiz, nil
}

func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.QuizSummary, error) {
	timestamp := nowISO()
	quiz := models.Quiz{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: trimPtr(req.Description),
		CreatedAt:   timestamp,
		UpdatedAt:   timestamp,
	}

	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}

	return &models.QuizSummary{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
		QuestionCount: 0,
	}, nil
}

func (s *QuizService) UpdateQuiz(quizID string, req *UpdateQuizRequest) (*models.QuizSummary, error) {
	var existing models.Quiz
	err := s.db.First(&existing, "id = ?", quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	nextDescription := existing.Description
	if req.Description.Set {
		nextDescription = trimPtr(req.Description.Value)
	}

	title := strings.TrimSpace(req.Title)
	timestamp := nowISO()
	err = s.db.Model(&models.Quiz{}).Where("id = ?", quizID).Updates(map[string]interface{}{
		"title":       title,
		"description": nextDescription,
		"updated_at":  timestamp,
	}).Error
	if err != nil {
		return nil, err
	}

	var questionCount int64
	if err := s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&questionCount).Error; err != nil {
		return nil, err
	}

	return &models.QuizSummary{
		ID:            quizID,
		Title:         title,
		Description:   nextDescription,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     timestamp,
		QuestionCount: int(questionCount),
	}, nil
}

// DeleteQuiz removes a quiz; questions, options, results and result answers
// go with it through the schema's ON DELETE CASCADE chain.
func (s *QuizService) DeleteQuiz(quizID string) error {
	result := s.db.Delete(&models.Quiz{}, "id = ?", quizID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}

// SaveQuestion upserts a question and reconciles its option set in one
// transaction. The response is reloaded after commit; nothing can
// interleave under the single-writer model.
func (s *QuizService) SaveQuestion(quizID string, req *SaveQuestionRequest) (*models.Question, error) {
	if err := s.quizExists(quizID); err != nil {
		return nil, err
	}

	timestamp := nowISO()
	questionID := req.QuestionID
	text := strings.TrimSpace(req.Text)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	exists := false
	if questionID != "" {
		var count int64
		if err := tx.Model(&models.Question{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		exists = count > 0
	}

	if exists {
		err := tx.Model(&models.Question{}).Where("id = ?", questionID).Updates(map[string]interface{}{
			"text":       text,
			"updated_at": timestamp,
		}).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		// A caller-supplied id that matches nothing still takes the insert
		// path under that id, so clients may pre-generate ids.
		if questionID == "" {
			questionID = uuid.NewString()
		}

		var nextOrder int
		err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", quizID).
			Select("COALESCE(MAX(order_index), -1) + 1").
			Scan(&nextOrder).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		question := models.Question{
			ID:         questionID,
			QuizID:     quizID,
			Text:       text,
			OrderIndex: nextOrder,
			CreatedAt:  timestamp,
			UpdatedAt:  timestamp,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := s.reconcileOptions(tx, questionID, req.Options); err != nil {
		tx.Rollback()
		return nil, err
	}

	err := tx.Model(&models.Quiz{}).Where("id = ?", quizID).
		Update("updated_at", timestamp).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadQuestion(questionID)
}

// reconcileOptions diffs the submitted option list against the stored one:
// matched ids are updated in place, unmatched entries are inserted (under
// the caller's id when one is given), and stored options missing from the
// payload are deleted.
func (s *QuizService) reconcileOptions(tx *gorm.DB, questionID string, inputs []OptionInput) error {
	var existing []models.Option
	if err := tx.Where("question_id = ?", questionID).Find(&existing).Error; err != nil {
		return err
	}
	existingIDs := make(map[string]struct{}, len(existing))
	for _, option := range existing {
		existingIDs[option.ID] = struct{}{}
	}

	kept := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		optionID := input.ID
		if optionID == "" {
			optionID = uuid.NewString()
		}
		kept[optionID] = struct{}{}

		if _, ok := existingIDs[optionID]; ok {
			err := tx.Model(&models.Option{}).Where("id = ?", optionID).Updates(map[string]interface{}{
				"text":        strings.TrimSpace(input.Text),
				"is_correct":  input.IsCorrect,
				"order_index": input.OrderIndex,
			}).Error
			if err != nil {
				return err
			}
			continue
		}

		option := models.Option{
			ID:         optionID,
			QuestionID: questionID,
			Text:       strings.TrimSpace(input.Text),
			IsCorrect:  input.IsCorrect,
			OrderIndex: input.OrderIndex,
		}
		if err := tx.Create(&option).Error; err != nil {
			return err
		}
	}

	var toDelete []string
	for id := range existingIDs {
		if _, ok := kept[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	if len(toDelete) > 0 {
		if err := tx.Where("id IN ?", toDelete).Delete(&models.Option{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReorderQuestion moves a question one position up or down among its
// siblings by swapping order_index values. Moving past either end is a
// successful no-op returning the current state.
func (s *QuizService) ReorderQuestion(quizID, questionID, direction string) (*models.Quiz, error) {
	if err := s.quizExists(quizID); err != nil {
		return nil, err
	}

	var siblings []models.Question
	err := s.db.Where("quiz_id = ?", quizID).Order("order_index").Find(&siblings).Error
	if err != nil {
		return nil, err
	}

	index := -1
	for i, question := range siblings {
		if question.ID == questionID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrQuestionNotFound
	}

	targetIndex := index + 1
	if direction == "up" {
		targetIndex = index - 1
	}
	if targetIndex < 0 || targetIndex >= len(siblings) {
		return s.GetQuiz(quizID)
	}

	current := siblings[index]
	target := siblings[targetIndex]

	err = s.swapQuestions(quizID, current, target)
	if err != nil {
		return nil, err
	}
	return s.GetQuiz(quizID)
}

func (s *QuizService) swapQuestions(quizID string, current, target models.Question) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Question{}).Where("id = ?", current.ID).
		Update("order_index", target.OrderIndex).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&models.Question{}).Where("id = ?", target.ID).
		Update("order_index", current.OrderIndex).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&models.Quiz{}).Where("id = ?", quizID).
		Update("updated_at", nowISO()).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// ReorderOption applies the same swap logic to a question's option list and
// refreshes both the question's and the quiz's updated_at.
func (s *QuizService) ReorderOption(quizID, questionID, optionID, direction string) (*models.Question, error) {
	if err := s.quizExists(quizID); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&models.Question{}).
		Where("id = ? AND quiz_id = ?", questionID, quizID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrQuestionNotFound
	}

	var siblings []models.Option
	err = s.db.Where("question_id = ?", questionID).Order("order_index").Find(&siblings).Error
	if err != nil {
		return nil, err
	}

	index := -1
	for i, option := range siblings {
		if option.ID == optionID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrOptionNotFound
	}

	targetIndex := index + 1
	if direction == "up" {
		targetIndex = index - 1
	}
	if targetIndex < 0 || targetIndex >= len(siblings) {
		return s.loadQuestion(questionID)
	}

	current := siblings[index]
	target := siblings[targetIndex]

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	timestamp := nowISO()
	if err := tx.Model(&models.Option{}).Where("id = ?", current.ID).
		Update("order_index", target.OrderIndex).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Option{}).Where("id = ?", target.ID).
		Update("order_index", current.OrderIndex).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Question{}).Where("id = ?", questionID).
		Update("updated_at", timestamp).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Quiz{}).Where("id = ?", quizID).
		Update("updated_at", timestamp).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadQuestion(questionID)
}

func (s *QuizService) loadQuestion(questionID string) (*models.Question, error) {
	var question models.Question
	err := s.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.order_index")
		}).
		First(&question, "id = ?", questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if question.Options == nil {
		question.Options = []models.Option{}
	}
	return &question, nil
}

func (s *QuizService) quizExists(quizID string) error {
	return quizExists(s.db, quizID)
}

func quizExists(db *gorm.DB, quizID string) error {
	var count int64
	if err := db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrQuizNotFound
	}
	return nil
}
