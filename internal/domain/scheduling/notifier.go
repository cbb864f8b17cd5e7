package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// Notification kinds emitted by the scheduler.
const (
	EventScheduled   = "appointment-scheduled"
	EventRescheduled = "appointment-rescheduled"
	EventCancelled   = "appointment-cancelled"
)

// Event describes an appointment state change a notification should be sent
// for. Params carry the template values (patient name, date, time, provider).
type Event struct {
	Kind          string
	AppointmentID uuid.UUID
	PatientID     uuid.UUID
	Recipient     string
	Params        map[string]string
}

// Notifier delivers appointment notifications. Delivery failures are logged
// and never roll back the appointment change.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) error { return nil }
