package physiotherapy

import "github.com/hms/hms/internal/workflow"

// conflict returns the first scheduled or in-progress session whose slot
// overlaps [start, start+duration), or nil.
func conflict(sessions []*Session, start, duration int) *Session {
	end := start + duration
	for _, s := range sessions {
		if !blockingStatuses[s.Status] {
			continue
		}
		other, err := workflow.ParseClock(s.ScheduledTime)
		if err != nil {
			continue
		}
		if workflow.Overlaps(start, end, other, other+s.DurationMinutes) {
			return s
		}
	}
	return nil
}
