package workflow

// Transitions is a status transition table: each key maps to the set of
// statuses it may move to. Statuses absent from the table are terminal.
type Transitions map[string][]string

// Can reports whether the table allows moving from one status to another.
// A no-op transition (from == to) is never allowed through Can; callers
// that tolerate idempotent updates check equality themselves.
func (t Transitions) Can(from, to string) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no outgoing transitions.
func (t Transitions) Terminal(status string) bool {
	return len(t[status]) == 0
}

// Check returns an InvalidTransitionError if the table does not allow the
// move, nil otherwise.
func (t Transitions) Check(entity, from, to string) error {
	if !t.Can(from, to) {
		return &InvalidTransitionError{Entity: entity, From: from, To: to}
	}
	return nil
}
