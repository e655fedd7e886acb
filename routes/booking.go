package routes

import (
	"zela/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking flow engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/session", hb.Booking.StartFlow)
		booking.GET("/session/:sessionID", hb.Booking.GetScreen)
		booking.POST("/session/:sessionID/submit", hb.Booking.SubmitScreen)
		booking.POST("/session/:sessionID/back", hb.Booking.Back)
		booking.POST("/session/:sessionID/jump", hb.Booking.Jump)
		booking.POST("/session/:sessionID/worker", hb.Booking.SelectWorker)
		booking.POST("/session/:sessionID/package", hb.Booking.SelectPackage)
		booking.GET("/session/:sessionID/quote", hb.Booking.Quote)
		booking.POST("/session/:sessionID/confirm", hb.Booking.Confirm)
		booking.DELETE("/session/:sessionID", hb.Booking.Cancel)
	}
}
