package booking

import "time"

type AvailabilityInput struct {
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
