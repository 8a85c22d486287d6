package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quizcrafter/logger"
	"quizcrafter/validation"
)

// Envelope is the uniform response shape: {ok:true, data} on success,
// {ok:false, errors} otherwise.
type Envelope struct {
	OK     bool                    `json:"ok"`
	Data   interface{}             `json:"data,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{OK: true, Data: data})
}

func respondErrors(c *gin.Context, status int, errs []validation.FieldError) {
	c.JSON(status, Envelope{OK: false, Errors: errs})
}

func notFound(c *gin.Context, field, message string) {
	respondErrors(c, http.StatusNotFound, []validation.FieldError{
		{Field: field, Code: "not_found", Message: message},
	})
}

func badRequest(c *gin.Context, message string) {
	respondErrors(c, http.StatusBadRequest, []validation.FieldError{
		{Field: "body", Code: "invalid", Message: message},
	})
}

// internalError hides storage failures behind a generic message; the caller
// only gets "try again" UX, the log gets the cause.
func internalError(c *gin.Context, err error) {
	logger.Log.Error("internal server error", zap.Error(err))
	respondErrors(c, http.StatusInternalServerError, []validation.FieldError{
		{Field: "", Code: "internal", Message: "Something went wrong. Please try again."},
	})
}
