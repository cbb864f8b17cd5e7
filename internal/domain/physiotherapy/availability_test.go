package physiotherapy

import "testing"

func TestConflict(t *testing.T) {
	sessions := []*Session{
		{ScheduledTime: "09:00", DurationMinutes: 60, Status: SessionScheduled},
	}

	if c := conflict(sessions, 570, 30); c == nil {
		t.Error("09:30 should conflict with the 09:00-10:00 session")
	}
	if c := conflict(sessions, 600, 30); c != nil {
		t.Error("back-to-back 10:00 slot should be free")
	}
	if c := conflict(sessions, 480, 60); c != nil {
		t.Error("08:00-09:00 slot should be free")
	}
}

func TestConflictIgnoresFinishedSessions(t *testing.T) {
	sessions := []*Session{
		{ScheduledTime: "09:00", DurationMinutes: 60, Status: SessionCancelled},
		{ScheduledTime: "09:00", DurationMinutes: 60, Status: SessionCompleted},
		{ScheduledTime: "09:00", DurationMinutes: 60, Status: SessionNoShow},
	}
	if c := conflict(sessions, 540, 30); c != nil {
		t.Error("finished sessions should not block the slot")
	}

	sessions = append(sessions, &Session{ScheduledTime: "09:00", DurationMinutes: 60, Status: SessionScheduled})
	if c := conflict(sessions, 540, 30); c == nil {
		t.Error("scheduled session should block the slot")
	}
}
