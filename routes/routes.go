package routes

import (
	"net/http"
	"time"

	"eventify/handlers"
	"eventify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers the category catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		api.GET("", hb.Catalog.ListCategories)
		api.GET("/:id/schema", hb.Catalog.GetSchema)
	}
}

// RegisterDraftRoutes registers the listing editor endpoints.
func RegisterDraftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drafts")
	{
		api.POST("", hb.Drafts.CreateDraft)
		api.GET("/:id", hb.Drafts.GetDraft)
		api.PATCH("/:id", hb.Drafts.UpdateFields)
		api.DELETE("/:id", hb.Drafts.DiscardDraft)
		api.PUT("/:id/category", hb.Drafts.ChangeCategory)

		api.POST("/:id/variants", hb.Drafts.AddVariant)
		api.PATCH("/:id/variants/:index", hb.Drafts.UpdateVariant)
		api.DELETE("/:id/variants/:index", hb.Drafts.RemoveVariant)

		api.POST("/:id/faqs", hb.Drafts.AddFAQ)
		api.DELETE("/:id/faqs/:index", hb.Drafts.RemoveFAQ)

		api.POST("/:id/images", hb.Drafts.AddImages)
		api.DELETE("/:id/images/existing/:index", hb.Drafts.RemoveExistingImage)
		api.DELETE("/:id/images/new/:index", hb.Drafts.RemoveNewImage)

		api.POST("/:id/validate", hb.Drafts.ValidateDraft)
		api.POST("/:id/submit", hb.Drafts.SubmitDraft)
	}
}

// RegisterServiceRoutes registers the listing ingest endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.POST("", hb.Services.CreateService)
		api.PUT("/:id", hb.Services.UpdateService)
		api.GET("/:id", hb.Services.GetService)
	}
}

// RegisterBookingRoutes registers the quote and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.POST("", hb.Booking.CreateBooking)
		api.POST("/quote", hb.Booking.Quote)
		api.GET("/live/:serviceId", hb.Booking.LiveQuote)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Eventify"})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterDraftRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
