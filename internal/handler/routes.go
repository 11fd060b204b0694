package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/interviewprep-api/internal/middleware"
)

// Handlers объединяет все обработчики API
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Quiz    *QuizHandler
	Session *SessionHandler
	AI      *AIHandler
	Mock    *MockInterviewHandler
}

// RegisterRoutes регистрирует маршруты API в группе /api.
// aiLimit ограничивает частоту вызовов эндпоинтов, обращающихся к AI.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, authMiddleware *middleware.AuthMiddleware, aiLimit gin.HandlerFunc) {
	requireAuth := authMiddleware.RequireAuth()

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/profile", requireAuth, h.User.GetProfile)
	}

	quiz := api.Group("/quiz")
	quiz.Use(requireAuth)
	{
		quiz.POST("/generate", aiLimit, h.Quiz.GenerateQuiz)
		quiz.GET("/my-quizzes", h.Quiz.GetMyQuizzes)
		quiz.GET("/results", h.Quiz.GetResults)
		quiz.GET("/results/export", h.Quiz.ExportResults)
		quiz.GET("/stats", h.Quiz.GetStats)
		quiz.GET("/result/:id", middleware.ExtractUUIDParam("id", ResultIDKey), h.Quiz.GetResult)
		quiz.POST("/submit", h.Quiz.SubmitQuiz)

		quizWithID := quiz.Group("/:id")
		quizWithID.Use(middleware.ExtractUUIDParam("id", QuizIDKey))
		{
			quizWithID.GET("", h.Quiz.GetQuiz)
			quizWithID.DELETE("", h.Quiz.DeleteQuiz)
		}
	}

	sessions := api.Group("/sessions")
	sessions.Use(requireAuth)
	{
		sessions.POST("/create", h.Session.CreateSession)
		sessions.GET("/my-sessions", h.Session.GetMySessions)

		sessionWithID := sessions.Group("/:id")
		sessionWithID.Use(middleware.ExtractUUIDParam("id", SessionIDKey))
		{
			sessionWithID.GET("", h.Session.GetSession)
			sessionWithID.DELETE("", h.Session.DeleteSession)
		}
	}

	questions := api.Group("/question")
	questions.Use(requireAuth)
	{
		questions.POST("/add", h.Session.AddQuestions)

		questionWithID := questions.Group("/:id")
		questionWithID.Use(middleware.ExtractUUIDParam("id", QuestionIDKey))
		{
			questionWithID.POST("/pin", h.Session.TogglePin)
			questionWithID.POST("/note", h.Session.UpdateNote)
		}
	}

	aiGroup := api.Group("/ai")
	aiGroup.Use(requireAuth, aiLimit)
	{
		aiGroup.POST("/generate-questions", h.AI.GenerateQuestions)
		aiGroup.POST("/generate-explanation", h.AI.GenerateExplanation)
	}

	mock := api.Group("/mock-interview")
	mock.Use(requireAuth)
	{
		mock.POST("/generate", aiLimit, h.Mock.Generate)
		mock.POST("/submit-answer", aiLimit, h.Mock.SubmitAnswer)
		mock.GET("/results/:sessionId", middleware.ExtractUUIDParam("sessionId", MockSessionIDKey), h.Mock.GetResults)
		mock.GET("/my-interviews", h.Mock.GetMyInterviews)
	}
}
