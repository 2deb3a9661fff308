package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanap7/diwan-print-agent/internal/config"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/handler"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/middleware"
	"github.com/ryanap7/diwan-print-agent/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Print       *handler.PrintHandler
	Printer     *handler.PrinterHandler
	Preferences *handler.PreferencesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *slog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerPrintRoutes(protected, h)
		registerPrinterRoutes(protected, h)
		registerPreferenceRoutes(protected, h)
	}

	return router
}

func registerPrintRoutes(protected *gin.RouterGroup, h *Handlers) {
	printGroup := protected.Group("/print")
	{
		printGroup.POST("", h.Print.PrintReceipt)
		printGroup.POST("/text", h.Print.PrintText)
		printGroup.POST("/image", h.Print.PrintImage)
		printGroup.POST("/handoff/:id/confirm", h.Print.ConfirmHandoff)
		printGroup.GET("/handoff/:id", h.Print.HandoffStatus)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/connect", h.Printer.Connect)
		printerGroup.POST("/disconnect", h.Printer.Disconnect)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}

func registerPreferenceRoutes(protected *gin.RouterGroup, h *Handlers) {
	preferences := protected.Group("/preferences")
	{
		preferences.GET("", h.Preferences.Get)
		preferences.PUT("", h.Preferences.Update)
	}
}
