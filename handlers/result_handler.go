package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizcrafter/services"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

func (h *ResultHandler) SaveResults(c *gin.Context) {
	var req services.SaveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.resultService.SaveResults(c.Param("id"), &req)
	if errors.Is(err, services.ErrQuizNotFound) {
		notFound(c, "quizId", "Quiz not found.")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

// GetResultsSummary never 404s: a quiz with no recorded attempts (or a
// deleted one) yields a zero-attempt summary.
func (h *ResultHandler) GetResultsSummary(c *gin.Context) {
	summary, err := h.resultService.GetResultsSummary(c.Param("id"))
	if err != nil {
		internalError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
