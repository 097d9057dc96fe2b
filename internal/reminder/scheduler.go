package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/models"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

// ======================================================
// LEMBRETES (24h e 1h antes)
// ======================================================

// Scheduler varre reservas confirmadas a cada 15 minutos e dispara os
// lembretes de ~24h e ~1h. O SETNX no Redis garante que cada lembrete sai
// uma única vez mesmo com varreduras sobrepostas.
type Scheduler struct {
	db     *gorm.DB
	rdb    *redis.Client
	sender Sender
	cron   *cron.Cron
}

const scanEvery = 15 * time.Minute

func NewScheduler(db *gorm.DB, rdb *redis.Client, sender Sender) *Scheduler {
	return &Scheduler{
		db:     db,
		rdb:    rdb,
		sender: sender,
		cron:   cron.New(),
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc("*/15 * * * *", func() {
		s.run(context.Background())
	}); err != nil {
		log.Printf("reminder cron setup failed: %v", err)
		return
	}

	s.cron.Start()
	log.Println("reminder scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run(ctx context.Context) {
	now := timezone.Now()
	s.remind(ctx, now, 24*time.Hour, "24h")
	s.remind(ctx, now, time.Hour, "1h")
}

func (s *Scheduler) remind(ctx context.Context, now time.Time, lead time.Duration, kind string) {
	target := now.Add(lead)

	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Where(
			"status = ? AND start_time > ? AND start_time <= ?",
			string(domain.StatusConfirmed),
			target.Add(-scanEvery),
			target,
		).
		Find(&bookings).Error; err != nil {

		log.Printf("reminder scan (%s) failed: %v", kind, err)
		return
	}

	for _, bk := range bookings {
		key := fmt.Sprintf("reminder:%d:%s", bk.ID, kind)

		ok, err := s.rdb.SetNX(ctx, key, "1", 48*time.Hour).Result()
		if err != nil {
			log.Printf("reminder dedupe failed for booking %d: %v", bk.ID, err)
			continue
		}
		if !ok {
			// já enviado por uma varredura anterior
			continue
		}

		subject := fmt.Sprintf("Lembrete: %s", bk.Service.Name)
		body := fmt.Sprintf(
			"Olá %s,\n\nSeu horário de %s está marcado para %s (UTC).\n\nAté lá!",
			bk.User.Name,
			bk.Service.Name,
			bk.StartTime.UTC().Format("02/01/2006 15:04"),
		)

		if err := s.sender.Send(bk.User.Email, subject, body); err != nil {
			log.Printf("reminder send failed for booking %d: %v", bk.ID, err)
			// libera a chave para a próxima varredura tentar de novo
			s.rdb.Del(ctx, key)
		}
	}
}
