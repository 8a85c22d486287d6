package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizcrafter/services"
	"quizcrafter/validation"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

type ReorderRequest struct {
	Direction string `json:"direction"`
}

func validDirection(direction string) bool {
	return direction == "up" || direction == "down"
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	summaries, err := h.quizService.ListQuizzes()
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, summaries)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetQuiz(c.Param("id"))
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, quiz)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if errs := validation.ValidateQuizTitle(req.Title); len(errs) > 0 {
		respondErrors(c, http.StatusBadRequest, errs)
		return
	}

	summary, err := h.quizService.CreateQuiz(&req)
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusCreated, summary)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if errs := validation.ValidateQuizTitle(req.Title); len(errs) > 0 {
		respondErrors(c, http.StatusBadRequest, errs)
		return
	}

	summary, err := h.quizService.UpdateQuiz(c.Param("id"), &req)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "id", "Quiz not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.Param("id")
	err := h.quizService.DeleteQuiz(quizID)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": quizID})
}

func (h *QuizHandler) SaveQuestion(c *gin.Context) {
	var req services.SaveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	options := make([]validation.OptionInput, 0, len(req.Options))
	for _, option := range req.Options {
		options = append(options, validation.OptionInput{
			Text:      option.Text,
			IsCorrect: option.IsCorrect,
		})
	}
	if errs := validation.ValidateQuestion(req.Text, options); len(errs) > 0 {
		respondErrors(c, http.StatusBadRequest, errs)
		return
	}

	question, err := h.quizService.SaveQuestion(c.Param("id"), &req)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, question)
}

func (h *QuizHandler) ReorderQuestion(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validDirection(req.Direction) {
		respondErrors(c, http.StatusBadRequest, []validation.FieldError{
			{Field: "direction", Code: "invalid", Message: `Direction must be "up" or "down".`},
		})
		return
	}

	quiz, err := h.quizService.ReorderQuestion(c.Param("id"), c.Param("questionId"), req.Direction)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if errors.Is(err, services.ErrQuestionNotFound) {
		notFound(c, "questionId", "Question not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, quiz)
}

func (h *QuizHandler) ReorderOption(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validDirection(req.Direction) {
		respondErrors(c, http.StatusBadRequest, []validation.FieldError{
			{Field: "direction", Code: "invalid", Message: `Direction must be "up" or "down".`},
		})
		return
	}

	question, err := h.quizService.ReorderOption(
		c.Param("id"),
		c.Param("questionId"),
		c.Param("optionId"),
		req.Direction,
	)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if errors.Is(err, services.ErrQuestionNotFound) {
		notFound(c, "questionId", "Question not found.")
		return
	}
	if errors.Is(err, services.ErrOptionNotFound) {
		notFound(c, "optionId", "Option not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, question)
}
