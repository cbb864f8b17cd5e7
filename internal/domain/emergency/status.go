package emergency

import "github.com/hms/hms/internal/workflow"

// Patient statuses.
const (
	StatusWaitingTriage    = "waiting_triage"
	StatusTriaged          = "triaged"
	StatusInTreatment      = "in_treatment"
	StatusAwaitingResults  = "awaiting_results"
	StatusAwaitingDecision = "awaiting_decision"
	StatusAdmitted         = "admitted"
	StatusDischarged       = "discharged"
	StatusTransferred      = "transferred"
	StatusDeceased         = "deceased"
	StatusLeft             = "left"
)

// Bed statuses.
const (
	BedAvailable   = "available"
	BedOccupied    = "occupied"
	BedCleaning    = "cleaning"
	BedMaintenance = "maintenance"
)

// Order statuses.
const (
	OrderOrdered    = "ordered"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Triage levels ordered by urgency.
const (
	LevelRed    = "red"
	LevelOrange = "orange"
	LevelYellow = "yellow"
	LevelGreen  = "green"
	LevelBlue   = "blue"
)

var triageRank = map[string]int{
	LevelRed:    1,
	LevelOrange: 2,
	LevelYellow: 3,
	LevelGreen:  4,
	LevelBlue:   5,
}

// unassessedRank sorts patients without a triage assessment after every
// assessed patient.
const unassessedRank = 999

// TriageRank returns the queue rank for a triage level. Unknown or empty
// levels rank last.
func TriageRank(level string) int {
	if r, ok := triageRank[level]; ok {
		return r
	}
	return unassessedRank
}

var validArrivalModes = map[string]bool{
	"ambulance": true,
	"walk_in":   true,
	"transfer":  true,
}

var patientTransitions = workflow.Transitions{
	StatusWaitingTriage:    {StatusTriaged, StatusLeft},
	StatusTriaged:          {StatusInTreatment, StatusLeft},
	StatusInTreatment:      {StatusAwaitingResults, StatusAwaitingDecision, StatusAdmitted, StatusDischarged, StatusTransferred, StatusDeceased},
	StatusAwaitingResults:  {StatusInTreatment, StatusAwaitingDecision, StatusAdmitted, StatusDischarged, StatusTransferred, StatusDeceased},
	StatusAwaitingDecision: {StatusAdmitted, StatusDischarged, StatusTransferred, StatusDeceased},
}

// activeStatuses are the statuses of patients still physically in the
// department. Only these appear in the waiting queue.
var activeStatuses = map[string]bool{
	StatusWaitingTriage:    true,
	StatusTriaged:          true,
	StatusInTreatment:      true,
	StatusAwaitingResults:  true,
	StatusAwaitingDecision: true,
}

// dispositionStatus maps a disposition decision onto the terminal patient
// status it produces.
var dispositionStatus = map[string]string{
	"admit":     StatusAdmitted,
	"discharge": StatusDischarged,
	"transfer":  StatusTransferred,
	"deceased":  StatusDeceased,
}

var validBedKinds = map[string]bool{
	"regular":       true,
	"trauma":        true,
	"isolation":     true,
	"pediatric":     true,
	"resuscitation": true,
}

var bedTransitions = workflow.Transitions{
	BedAvailable:   {BedOccupied, BedMaintenance},
	BedOccupied:    {BedCleaning, BedMaintenance},
	BedCleaning:    {BedAvailable, BedMaintenance},
	BedMaintenance: {BedAvailable},
}

var orderTransitions = workflow.Transitions{
	OrderOrdered:    {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderCompleted, OrderCancelled},
}

var validOrderKinds = map[string]bool{
	"test":      true,
	"treatment": true,
}
