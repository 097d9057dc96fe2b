package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atendoapp/agenda-api/internal/httperr"
)

// ===============================
// LocalTime (HH:MM validado)
// ===============================

// LocalTime é um horário de parede sem data, validado na construção.
// Substitui o parse solto de strings "HH:MM" espalhado pelo código.
type LocalTime struct {
	Hour   int
	Minute int
}

func NewLocalTime(hour, minute int) (LocalTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return LocalTime{}, httperr.ErrBusiness("invalid_time")
	}
	return LocalTime{Hour: hour, Minute: minute}, nil
}

func ParseLocalTime(s string) (LocalTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return LocalTime{}, httperr.ErrBusiness("invalid_time")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return LocalTime{}, httperr.ErrBusiness("invalid_time")
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return LocalTime{}, httperr.ErrBusiness("invalid_time")
	}

	return NewLocalTime(hour, minute)
}

func (t LocalTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t LocalTime) Before(other LocalTime) bool {
	return t.Minutes() < other.Minutes()
}

// At ancora o horário no dia informado, preservando o fuso do dia.
func (t LocalTime) At(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour, t.Minute, 0, 0,
		day.Location(),
	)
}

func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
