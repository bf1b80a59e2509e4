package domain

import "testing"

func TestCanTransitionToFullGrid(t *testing.T) {
	allowed := map[ServiceStatus]map[ServiceStatus]bool{
		StatusRequested:  {StatusScheduled: true, StatusCancelled: true},
		StatusScheduled:  {StatusInProgress: true, StatusCancelled: true},
		StatusInProgress: {StatusCompleted: true, StatusFailed: true},
		StatusCompleted:  {},
		StatusCancelled:  {},
		StatusFailed:     {},
	}

	statuses := ServiceStatuses()
	if len(statuses) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(statuses))
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("transition %s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSelfTransitionsRejected(t *testing.T) {
	for _, status := range ServiceStatuses() {
		if status.CanTransitionTo(status) {
			t.Fatalf("expected self transition on %s to be rejected", status)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	cases := []struct {
		status   ServiceStatus
		terminal bool
	}{
		{StatusRequested, false},
		{StatusScheduled, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusFailed, true},
	}
	for _, tc := range cases {
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Fatalf("%s: Terminal() = %v, want %v", tc.status, got, tc.terminal)
		}
	}
}

func TestUnknownStatus(t *testing.T) {
	unknown := ServiceStatus("ARCHIVED")
	if unknown.Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
	if unknown.Terminal() {
		t.Fatalf("unknown status must not report terminal")
	}
	if unknown.CanTransitionTo(StatusScheduled) {
		t.Fatalf("unknown status must not allow transitions")
	}
	if StatusRequested.CanTransitionTo(unknown) {
		t.Fatalf("transition into unknown status must be rejected")
	}
}
