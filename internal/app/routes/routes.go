package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alpersoy/polls/internal/app/controllers"
	"github.com/alpersoy/polls/internal/app/models/dto"
	"github.com/alpersoy/polls/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pollController *controllers.PollController,
	questionController *controllers.QuestionController,
	authController *controllers.AuthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- HTML poll pages ---
	// Registered with trailing slashes so the canonical URLs answer
	// directly instead of through a redirect.
	polls := router.Group("/polls")
	{
		polls.GET("/", pollController.Index)
		polls.GET("/:id/", pollController.Detail)
		polls.GET("/:id/results/", pollController.Results)
		polls.POST("/:id/vote/", pollController.Vote)
	}

	// --- JSON API ---
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Question routes (public reads and voting)
	questions := v1.Group("/questions")
	{
		questions.GET("", questionController.ListQuestions)
		questions.GET("/:id", questionController.GetQuestionByID)
		questions.GET("/:id/choices", questionController.ListChoices)
		questions.POST("/:id/vote", questionController.Vote)

		// Authoring routes require a valid admin token
		questionsProtected := questions.Group("")
		questionsProtected.Use(authMiddleware.JWTAuth())
		{
			questionsProtected.POST("", questionController.CreateQuestion)
			questionsProtected.PUT("/:id", questionController.UpdateQuestion)
			questionsProtected.DELETE("/:id", questionController.DeleteQuestion)
			questionsProtected.POST("/:id/choices", questionController.AddChoice)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
