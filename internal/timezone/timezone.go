package timezone

import "time"

// Todos os instantes do sistema são normalizados em UTC;
// outro fuso só entra via TIMEZONE no ambiente.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
