package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atendoapp/agenda-api/internal/audit"
	"github.com/atendoapp/agenda-api/internal/config"
	"github.com/atendoapp/agenda-api/internal/handlers"
	"github.com/atendoapp/agenda-api/internal/middleware"
	"github.com/atendoapp/agenda-api/internal/payments"
	ucBooking "github.com/atendoapp/agenda-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	gateway *payments.Client,
	calendar ucBooking.CalendarSync,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, cfg.Timezone)
	serviceHandler := handlers.NewServiceHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher, gateway, cfg.Timezone)

	webhookHandler := handlers.NewWebhookHandler(
		db,
		gateway,
		cfg.MPWebhookSecret,
		calendar,
		auditDispatcher,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/availability", publicHandler.Availability)

		// ------------------------------
		// 🔔 WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/payment", webhookHandler.HandlePayment)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (cliente)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/bookings", bookingHandler.MyBookings)

			secured.POST("/bookings/checkout", bookingHandler.Checkout)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
		}

		// ------------------------------
		// 👑 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole("admin"))
		{
			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/availability-windows", availabilityHandler.Get)
			admin.PUT("/availability-windows", availabilityHandler.Update)

			admin.GET("/bookings", bookingHandler.ListByDate)
			admin.GET("/bookings/month", bookingHandler.ListByMonth)
			admin.PATCH("/bookings/:id/complete", bookingHandler.Complete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
