package models

import "time"

// Janela semanal de atendimento. Pode haver várias janelas por dia
// (ex.: pausa de almoço = duas janelas no mesmo weekday).
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
