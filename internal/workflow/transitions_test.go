package workflow

import (
	"errors"
	"testing"
)

func TestTransitionsCan(t *testing.T) {
	table := Transitions{
		"scheduled":   {"in_progress", "cancelled"},
		"in_progress": {"completed"},
	}

	if !table.Can("scheduled", "in_progress") {
		t.Error("expected scheduled -> in_progress to be allowed")
	}
	if table.Can("scheduled", "completed") {
		t.Error("expected scheduled -> completed to be rejected")
	}
	if table.Can("completed", "scheduled") {
		t.Error("expected terminal status to have no transitions")
	}
	if table.Can("scheduled", "scheduled") {
		t.Error("expected no-op transition to be rejected")
	}
}

func TestTransitionsTerminal(t *testing.T) {
	table := Transitions{
		"active": {"completed"},
	}

	if table.Terminal("active") {
		t.Error("active should not be terminal")
	}
	if !table.Terminal("completed") {
		t.Error("completed should be terminal")
	}
}

func TestTransitionsCheck(t *testing.T) {
	table := Transitions{"waiting": {"triaged"}}

	if err := table.Check("patient", "waiting", "triaged"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := table.Check("patient", "waiting", "discharged")
	if err == nil {
		t.Fatal("expected invalid transition error")
	}
	if !IsInvalidTransition(err) {
		t.Errorf("expected InvalidTransitionError, got %T", err)
	}
	var ite *InvalidTransitionError
	if errors.As(err, &ite) {
		if ite.From != "waiting" || ite.To != "discharged" {
			t.Errorf("unexpected transition fields: %+v", ite)
		}
	}
}

func TestNotFoundUnwrapsSentinel(t *testing.T) {
	err := NotFound("bed", "b-1")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
	if err.Error() != "bed b-1 not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := Required("patient_name").Error(); got != "patient_name: is required" {
		t.Errorf("unexpected message: %s", got)
	}
	if !IsValidation(Invalid("pain_score", "must be between 0 and 10")) {
		t.Error("expected validation error")
	}
}
