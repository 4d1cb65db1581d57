package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut/booking-api/internal/config"
	"github.com/sharpcut/booking-api/internal/handlers"
	"github.com/sharpcut/booking-api/internal/middleware"
	schedule "github.com/sharpcut/booking-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *schedule.Service) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORS())

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(db, svc)
	appointmentHandler := handlers.NewAppointmentHandler(db, svc)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, svc)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, svc)
	barberHandler := handlers.NewBarberHandler(db, svc)
	bannedHandler := handlers.NewBannedHandler(db)
	waitlistHandler := handlers.NewWaitlistHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// API PUBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/barbers/:barberId/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/barbers/:barberId/time-buttons", publicHandler.TimeButtons)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateRequest)
			publicAPI.PATCH("/:slug/appointments/:id/cancel", publicHandler.CancelRequest)
			publicAPI.POST("/:slug/waitlist", publicHandler.JoinWaitlist)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.Auth(cfg))
		{
			// BARBERS
			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)
			secured.PATCH("/barbers/:id/deactivate", barberHandler.Deactivate)

			// WORKING HOURS + OVERRIDES
			secured.GET("/barbers/:barberId/working-hours", workingHoursHandler.Get)
			secured.PUT("/barbers/:barberId/working-hours", workingHoursHandler.Upsert)
			secured.GET("/barbers/:barberId/working-hours/day", workingHoursHandler.ResolvedDay)
			secured.GET("/barbers/:barberId/overrides", workingHoursHandler.ListOverrides)
			secured.POST("/barbers/:barberId/overrides", workingHoursHandler.CreateOverride)
			secured.DELETE("/overrides/:id", workingHoursHandler.DeleteOverride)

			// APPOINTMENTS
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.AdminBook)
			secured.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
			secured.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// SUBSCRIPTIONS
			secured.GET("/subscriptions", subscriptionHandler.List)
			secured.POST("/subscriptions", subscriptionHandler.Create)
			secured.POST("/subscriptions/:id/top-up", subscriptionHandler.TopUp)
			secured.PATCH("/subscriptions/:id/deactivate", subscriptionHandler.Deactivate)

			// BANNED CUSTOMERS
			secured.GET("/banned", bannedHandler.List)
			secured.POST("/banned", bannedHandler.Create)
			secured.DELETE("/banned/:id", bannedHandler.Delete)

			// WAITLIST
			secured.GET("/waitlist", waitlistHandler.List)

			// AUDIT
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
