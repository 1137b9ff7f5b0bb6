package api

import (
	emailUsecasePkg "mailqa-backend/internal/email/usecase"
	"mailqa-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	workspaceUsecase emailUsecasePkg.WorkspaceUsecase
	config           *config.Config
}

func NewHandler(workspaceUc emailUsecasePkg.WorkspaceUsecase, cfg *config.Config) *Handler {
	return &Handler{
		workspaceUsecase: workspaceUc,
		config:           cfg,
	}
}

// Engine builds the gin engine with CORS and all routes registered
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(h.config.GinMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.workspaceUsecase, h.config)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}
