package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{InvalidArgumentError{Op: "request_service", Field: "description", Reason: "must not be empty"},
			"request_service: invalid description: must not be empty"},
		{NotFoundError{Entity: EntityServiceRequest, Key: "CLEANING_1_2"},
			"service_request CLEANING_1_2 not found"},
		{NotFoundError{Entity: EntityResident, Key: "a@b.c", Op: "update_resident"},
			"update_resident: resident a@b.c not found"},
		{DuplicateEntityError{Entity: EntityResident, Constraint: "apartment", Value: "12B"},
			`resident with apartment "12B" already exists`},
		{StateTransitionError{Key: "X", From: StatusCompleted, To: StatusScheduled},
			"service X: cannot transition from COMPLETED to SCHEDULED"},
		{SchedulingConflictError{Key: "X", Reason: "time is in the past"},
			"service X: scheduling conflict: time is in the past"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestErrorsMatchWithAs(t *testing.T) {
	wrapped := fmt.Errorf("registering: %w", DuplicateEntityError{Entity: EntityResident, Constraint: "email", Value: "a@b.c"})
	var dup DuplicateEntityError
	if !errors.As(wrapped, &dup) {
		t.Fatalf("expected errors.As to match DuplicateEntityError")
	}
	if dup.Constraint != "email" {
		t.Fatalf("unexpected constraint %q", dup.Constraint)
	}
	if !strings.Contains(wrapped.Error(), "already exists") {
		t.Fatalf("unexpected wrapped message %q", wrapped.Error())
	}
}
