package routes

import (
	"net/http"
	"time"

	"homecollect/config"
	"homecollect/handlers"
	"homecollect/middleware"
	"homecollect/models"
	"homecollect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var staff = []string{models.RoleCollector, models.RoleAdmin}

// RegisterSlotRoutes registers slot listing endpoints.
func RegisterSlotRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	slots := api.Group("/slots")
	{
		slots.GET("", hb.ListSlots)
		slots.GET("/next", hb.NextAvailable)
	}
}

// RegisterBookingRoutes sets up reservation and lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("", hb.BookSlot)
		bookings.GET("/:orderId", hb.GetBooking)
		bookings.DELETE("/:orderId", hb.CancelBooking)

		// Collector-only lifecycle.
		bookings.POST("/verify-otp", middleware.RequireRoles(staff...), hb.VerifyOTP)
		bookings.PUT("/:orderId/status", middleware.RequireRoles(staff...), hb.UpdateStatus)
	}
}

// RegisterCollectorRoutes sets up field operation endpoints.
func RegisterCollectorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	collector := api.Group("/collector")
	{
		collector.Use(middleware.RequireRoles(staff...))
		collector.GET("/runs", hb.ListRun)
		collector.PUT("/bookings/:orderId/samples/:type", hb.RecordSample)
		collector.POST("/bookings/:orderId/samples/:type/image", hb.UploadSampleImage)
		collector.PUT("/bookings/:orderId/payment", hb.RecordPayment)
		collector.PUT("/bookings/:orderId/handover", hb.Handover)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	{
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		admin.POST("/teams", hb.CreateTeam)
		admin.GET("/teams", hb.ListTeams)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Home collection booking service",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	RegisterSlotRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterCollectorRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
