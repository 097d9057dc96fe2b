package handlers

import (
	"time"

	"github.com/atendoapp/agenda-api/internal/timezone"
)

// resolve a data enviada pelo cliente no timezone da instalação
func parseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location(tz))
}

func parseMonth(tz, monthStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01", monthStr, timezone.Location(tz))
}
