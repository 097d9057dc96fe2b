package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/atendoapp/agenda-api/internal/calendar"
	"github.com/atendoapp/agenda-api/internal/config"
	dbpkg "github.com/atendoapp/agenda-api/internal/db"
	"github.com/atendoapp/agenda-api/internal/payments"
	"github.com/atendoapp/agenda-api/internal/reminder"
	"github.com/atendoapp/agenda-api/internal/routes"
	ucBooking "github.com/atendoapp/agenda-api/internal/usecase/booking"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()

	db := dbpkg.NewDB(cfg)
	dbpkg.Seed(db)

	// ======================================================
	// 💳 PAGAMENTOS
	// ======================================================
	gateway, err := payments.NewClient(cfg.MPAccessToken, cfg.AppURL)
	if err != nil {
		log.Fatalf("failed to init payment client: %v", err)
	}

	// ======================================================
	// 📅 GOOGLE CALENDAR (opcional)
	// ======================================================
	var calendarSync ucBooking.CalendarSync
	if cfg.GoogleCredentialsFile != "" {
		gc, err := calendar.NewGoogleCalendar(
			context.Background(),
			cfg.GoogleCredentialsFile,
			cfg.GoogleCalendarID,
		)
		if err != nil {
			log.Printf("calendar sync disabled: %v", err)
		} else {
			calendarSync = gc
		}
	}

	// ======================================================
	// ⏰ LEMBRETES
	// ======================================================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	sender := reminder.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	scheduler := reminder.NewScheduler(db, rdb, sender)
	scheduler.Start()
	defer scheduler.Stop()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, gateway, calendarSync)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
