package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookkeeping-backend/internal/config"
	handler "bookkeeping-backend/internal/handlers"
	"bookkeeping-backend/internal/repository"
	"bookkeeping-backend/internal/services/deadlines"
	"bookkeeping-backend/internal/services/ingestion"
	"bookkeeping-backend/internal/services/numbering"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	deadlineRepo := repository.NewDeadlineRepository(db)

	allocator := numbering.NewAllocator(db)
	ingestionService := ingestion.NewService(accountRepo, allocator, invoiceRepo)
	deadlineService := deadlines.NewService(deadlineRepo)

	webhookHandler := handler.NewWebhookHandler(cfg.WebhookSecret, ingestionService)
	deadlineHandler := handler.NewDeadlineHandler(deadlineService, accountRepo)

	// Non-POST hits on the webhook (and any other mismatched method) get
	// the fixed method-not-allowed body instead of gin's default 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Webhook ingestion
	api.POST("/webhooks/invoice", webhookHandler.Receive)

	// Tax deadlines
	dl := api.Group("/deadlines")
	dl.GET("/:year", deadlineHandler.List)
	dl.POST("/:id/acknowledge", deadlineHandler.Acknowledge)
}
