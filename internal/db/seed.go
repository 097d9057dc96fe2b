package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/atendoapp/agenda-api/internal/models"
)

// Seed cria o catálogo inicial e a agenda padrão (seg–sex, 09:00–17:00)
// quando o banco está vazio.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Service{}).Count(&count)

	if count == 0 {
		services := []models.Service{
			{
				Name:        "Strategy Session",
				Description: "A 60-minute deep dive into your business strategy.",
				DurationMin: 60,
				Price:       150,
				Active:      true,
				Category:    "consulting",
			},
			{
				Name:        "Technical Audit",
				Description: "Full audit of your software architecture and code.",
				DurationMin: 90,
				Price:       250,
				Active:      true,
				Category:    "consulting",
			},
			{
				Name:        "Quick Consultation",
				Description: "30-minute call for quick questions.",
				DurationMin: 30,
				Price:       75,
				Active:      true,
				Category:    "consulting",
			},
		}

		if err := db.Create(&services).Error; err != nil {
			log.Printf("seed services failed: %v", err)
		}
	}

	db.Model(&models.AvailabilityWindow{}).Count(&count)

	if count == 0 {
		var windows []models.AvailabilityWindow
		for weekday := 1; weekday <= 5; weekday++ {
			windows = append(windows, models.AvailabilityWindow{
				Weekday:   weekday,
				StartTime: "09:00",
				EndTime:   "17:00",
				Active:    true,
			})
		}

		if err := db.Create(&windows).Error; err != nil {
			log.Printf("seed availability failed: %v", err)
		}
	}
}
