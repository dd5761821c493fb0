package routes

import (
	"net/http"
	"time"

	"servicehub/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the gateway's handlers for route registration.
type HandlerBundle struct {
	Search   *handlers.SearchHandler
	Provider *handlers.ProviderHandler
	Booking  *handlers.BookingHandler
	Geo      *handlers.GeoHandler
}

// CORSMiddleware configures cross-origin access for the web frontend.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// RegisterSearchRoutes registers the discovery endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/search")
	{
		api.GET("", hb.Search.SearchProvidersHandler)
		api.POST("/:sessionID/expand", hb.Search.ExpandSearchHandler)
	}
}

// RegisterProviderRoutes registers provider detail and availability endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/:id", hb.Provider.GetProviderProfileHandler)
		api.GET("/:id/availability", hb.Booking.GetAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the booking submission endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateBookingHandler)
	}
}

// RegisterGeoRoutes registers the geolocation endpoint.
func RegisterGeoRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/geo")
	{
		api.POST("/locate", hb.Geo.LocateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm ServiceHub"})
	})
}

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterSearchRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterGeoRoutes(r, hb)
}
