package routes

import (
	"net/http"

	"quizcrafter/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	quizHandler *handlers.QuizHandler,
	resultHandler *handlers.ResultHandler,
	version string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Quiz routes
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)

			// Question and option editing
			quizzes.POST("/:id/questions", quizHandler.SaveQuestion)
			quizzes.POST("/:id/questions/:questionId/reorder", quizHandler.ReorderQuestion)
			quizzes.POST("/:id/questions/:questionId/options/:optionId/reorder", quizHandler.ReorderOption)

			// Playback results
			quizzes.POST("/:id/results", resultHandler.SaveResults)
			quizzes.GET("/:id/results", resultHandler.GetResultsSummary)
		}

		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, handlers.Envelope{OK: true, Data: gin.H{"version": version}})
		})
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
