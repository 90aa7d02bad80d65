package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/diveplanner/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	// sketches arrive base64 encoded inside JSON
	sketchLimit := cfg.Sketches.MaxBytes*2 + 4<<10

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/gas-plans", handler.PlanGas)
		api.POST("/gas-plans/sheet", handler.GasSheet)

		api.POST("/safety-summaries", handler.SafetySummary)

		api.POST("/chat/messages", handler.SendChatMessage)
		api.GET("/chat/sessions/:id", handler.ChatTranscript)
		api.DELETE("/chat/sessions/:id", handler.ResetChat)

		api.POST("/destinations/info", handler.DestinationInfo)
		api.GET("/destinations/trending", handler.TrendingDestinations)

		api.POST("/budgets", handler.CalculateBudget)
		api.POST("/budgets/tips", handler.BudgetTips)
		api.POST("/budgets/export", handler.ExportBudget)

		api.POST("/images", handler.GenerateImage)
		api.POST("/sketches", bodyLimit(sketchLimit), handler.UploadSketch)
		api.GET("/sketches/:id", handler.GetSketch)
		api.DELETE("/sketches/:id", handler.DeleteSketch)

		api.POST("/subscriptions", handler.Subscribe)
		api.DELETE("/subscriptions/:email", handler.Unsubscribe)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}

func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
