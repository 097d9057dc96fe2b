package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar cria eventos na agenda configurada quando uma reserva é
// confirmada. Falha de sync nunca derruba a confirmação — quem chama decide
// só logar.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleCalendar(
	ctx context.Context,
	credentialsFile string,
	calendarID string,
) (*GoogleCalendar, error) {

	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleCalendar{
		svc:        svc,
		calendarID: calendarID,
	}, nil
}

func (g *GoogleCalendar) CreateEvent(
	ctx context.Context,
	summary string,
	description string,
	start time.Time,
	end time.Time,
	attendee string,
) (string, error) {

	event := &gcal.Event{
		Summary:     summary,
		Description: description,
		Start: &gcal.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: []*gcal.EventAttendee{
			{Email: attendee},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}

	return created.Id, nil
}
