package physiotherapy

import "github.com/hms/hms/internal/workflow"

// Patient statuses.
const (
	StatusActive     = "active"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusDischarged = "discharged"
)

// Session statuses.
const (
	SessionScheduled  = "scheduled"
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionCancelled  = "cancelled"
	SessionNoShow     = "no_show"
)

// Therapist statuses.
const (
	TherapistActive   = "active"
	TherapistInactive = "inactive"
	TherapistOnLeave  = "on_leave"
)

// Equipment statuses.
const (
	EquipmentAvailable   = "available"
	EquipmentInUse       = "in_use"
	EquipmentMaintenance = "maintenance"
	EquipmentOutOfOrder  = "out_of_order"
)

// patientTransitions allows reactivating a completed plan; discharged is
// terminal.
var patientTransitions = workflow.Transitions{
	StatusActive:    {StatusOnHold, StatusCompleted, StatusDischarged},
	StatusOnHold:    {StatusActive},
	StatusCompleted: {StatusActive},
}

var sessionTransitions = workflow.Transitions{
	SessionScheduled:  {SessionInProgress, SessionCancelled, SessionNoShow},
	SessionInProgress: {SessionCompleted},
}

// blockingStatuses are the session statuses that occupy the therapist's
// time slot for availability purposes.
var blockingStatuses = map[string]bool{
	SessionScheduled:  true,
	SessionInProgress: true,
}

var validTherapistStatuses = map[string]bool{
	TherapistActive:   true,
	TherapistInactive: true,
	TherapistOnLeave:  true,
}

var validEquipmentStatuses = map[string]bool{
	EquipmentAvailable:   true,
	EquipmentInUse:       true,
	EquipmentMaintenance: true,
	EquipmentOutOfOrder:  true,
}
