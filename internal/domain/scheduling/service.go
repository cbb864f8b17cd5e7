package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/workflow"
)

// Service implements outpatient appointment booking. Notifications fire
// after the appointment change is persisted; a delivery failure is logged
// and never rolls the change back.
type Service struct {
	appointments AppointmentRepository
	directory    PatientDirectory
	notifier     Notifier
	logger       zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewService(appointments AppointmentRepository, directory PatientDirectory, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		appointments: appointments,
		directory:    directory,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *Service) ScheduleAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientName == "" {
		return workflow.Required("patient_name")
	}
	if a.Provider == "" {
		return workflow.Required("provider")
	}
	if err := workflow.ParseDate(a.ScheduledDate); err != nil {
		return err
	}
	if _, err := workflow.ParseClock(a.ScheduledTime); err != nil {
		return err
	}
	if a.DurationMinutes <= 0 {
		return workflow.Invalid("duration_minutes", "must be positive")
	}

	exists, err := s.directory.PatientExists(ctx, a.PatientID)
	if err != nil {
		return err
	}
	if !exists {
		return workflow.NotFound("patient", a.PatientID.String())
	}

	a.Status = StatusScheduled
	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}
	s.notify(ctx, EventScheduled, a)
	return nil
}

// RescheduleRequest carries the new slot for an existing appointment.
type RescheduleRequest struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

// Reschedule moves a scheduled appointment to a new slot. Only scheduled
// appointments can move; a checked-in or closed appointment cannot.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*Appointment, error) {
	if err := workflow.ParseDate(req.ScheduledDate); err != nil {
		return nil, err
	}
	if _, err := workflow.ParseClock(req.ScheduledTime); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("appointment", id.String())
	}
	if a.Status != StatusScheduled {
		return nil, &workflow.InvalidTransitionError{Entity: "appointment", From: a.Status, To: StatusScheduled}
	}

	a.ScheduledDate = req.ScheduledDate
	a.ScheduledTime = req.ScheduledTime
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.notify(ctx, EventRescheduled, a)
	return a, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, note *string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("appointment", id.String())
	}
	if err := appointmentTransitions.Check("appointment", a.Status, StatusCancelled); err != nil {
		return nil, err
	}

	a.Status = StatusCancelled
	if note != nil {
		a.Note = note
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	s.notify(ctx, EventCancelled, a)
	return a, nil
}

// UpdateStatus drives check-in, completion and no-show. Cancellation goes
// through Cancel so the notification fires.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if status == StatusCancelled {
		return nil, workflow.Invalid("status", "use the cancel operation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("appointment", id.String())
	}
	if err := appointmentTransitions.Check("appointment", a.Status, status); err != nil {
		return nil, err
	}

	a.Status = status
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	if err := workflow.ParseDate(date); err != nil {
		return nil, err
	}
	return s.appointments.ListByDate(ctx, date)
}

func (s *Service) notify(ctx context.Context, kind string, a *Appointment) {
	recipient := ""
	if a.ContactEmail != nil {
		recipient = *a.ContactEmail
	} else if a.ContactPhone != nil {
		recipient = *a.ContactPhone
	}
	if recipient == "" {
		return
	}

	err := s.notifier.Notify(ctx, Event{
		Kind:          kind,
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		Recipient:     recipient,
		Params: map[string]string{
			"patient_name": a.PatientName,
			"provider":     a.Provider,
			"date":         a.ScheduledDate,
			"time":         a.ScheduledTime,
		},
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("appointment_id", a.ID.String()).
			Str("kind", kind).
			Msg("appointment notification failed")
	}
}
