package maternity

import "github.com/hms/hms/internal/workflow"

// Patient statuses.
const (
	StatusPrenatal   = "prenatal"
	StatusLabor      = "labor"
	StatusDelivered  = "delivered"
	StatusPostpartum = "postpartum"
	StatusDischarged = "discharged"
)

// Newborn statuses.
const (
	NewbornHealthy     = "healthy"
	NewbornObservation = "observation"
	NewbornNICU        = "nicu"
	NewbornDeceased    = "deceased"
)

// The pregnancy lifecycle is a straight line. Labor is entered by admission,
// delivered only by recording a delivery, postpartum by the first postpartum
// checkup.
var patientTransitions = workflow.Transitions{
	StatusPrenatal:   {StatusLabor},
	StatusLabor:      {StatusDelivered},
	StatusDelivered:  {StatusPostpartum},
	StatusPostpartum: {StatusDischarged},
}

// Newborns move freely between the three care levels; deceased is terminal.
var newbornTransitions = workflow.Transitions{
	NewbornHealthy:     {NewbornObservation, NewbornNICU, NewbornDeceased},
	NewbornObservation: {NewbornHealthy, NewbornNICU, NewbornDeceased},
	NewbornNICU:        {NewbornHealthy, NewbornObservation, NewbornDeceased},
}

var validDeliveryMethods = map[string]bool{
	"vaginal":  true,
	"cesarean": true,
	"assisted": true,
}

var validNewbornSexes = map[string]bool{
	"male":   true,
	"female": true,
}
