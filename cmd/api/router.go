package api

import (
	"net/http"

	emailDelivery "mailqa-backend/internal/email/delivery"
	emailUsecase "mailqa-backend/internal/email/usecase"
	"mailqa-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, workspaceUsecase emailUsecase.WorkspaceUsecase, cfg *config.Config) {
	workspaceHandler := emailDelivery.NewWorkspaceHandler(workspaceUsecase, cfg.MaxUploadBytes)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Workspace state
		api.GET("/workspace", workspaceHandler.GetWorkspace)
		api.DELETE("/workspace", workspaceHandler.ResetWorkspace)
		api.GET("/summary", workspaceHandler.GetSummary)

		// Email batch routes
		emails := api.Group("/emails")
		{
			emails.GET("", workspaceHandler.GetEmails)
			emails.GET("/search", workspaceHandler.SearchEmails)
			emails.POST("/sample", workspaceHandler.LoadSampleEmails)
			emails.POST("/upload", workspaceHandler.UploadEmails)
			emails.POST("/import/mbox", workspaceHandler.ImportMbox)
			emails.POST("/index", workspaceHandler.IndexEmails) // SSE when Accept: text/event-stream
		}

		api.GET("/index", workspaceHandler.GetIndexResults)

		// Question routes
		questions := api.Group("/questions")
		{
			questions.POST("", workspaceHandler.AskQuestion)
			questions.GET("/suggestions", workspaceHandler.GetSuggestedQuestions)
		}

		// Settings routes - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/latency", GetLatencySettings)
			settings.PUT("/latency", UpdateLatencySettings)
		}
	}
}
