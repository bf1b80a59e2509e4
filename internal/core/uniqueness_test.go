package core

import (
	"errors"
	"testing"

	"communitycore/pkg/domain"
)

func apartmentGuard(store *Store[domain.Resident]) *UniquenessGuard[domain.Resident] {
	return NewUniquenessGuard(store,
		Constraint[domain.Resident]{Name: "email", Extract: func(r domain.Resident) string { return r.Email }},
		Constraint[domain.Resident]{Name: "apartment", Extract: func(r domain.Resident) string { return r.Apartment }},
	)
}

func TestGuardInsertRejectsDuplicateApartment(t *testing.T) {
	store := NewResidentStore()
	guard := apartmentGuard(store)

	if err := guard.Insert(testResident("first@example.com", "12B")); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := guard.Insert(testResident("second@example.com", "12B"))
	if err == nil {
		t.Fatalf("expected duplicate apartment to be rejected")
	}
	var dup domain.DuplicateEntityError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEntityError, got %v", err)
	}
	if dup.Constraint != "apartment" || dup.Value != "12B" {
		t.Fatalf("unexpected violation detail: %+v", dup)
	}
	if store.Count() != 1 {
		t.Fatalf("store must hold exactly the first resident, got %d", store.Count())
	}
}

func TestGuardApartmentMatchIgnoresCaseAndSpace(t *testing.T) {
	store := NewResidentStore()
	guard := apartmentGuard(store)

	if err := guard.Insert(testResident("a@example.com", "12b")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := guard.Insert(testResident("b@example.com", " 12B ")); err == nil {
		t.Fatalf("expected case-insensitive apartment collision")
	}
}

func TestGuardInsertRejectsExistingKey(t *testing.T) {
	store := NewResidentStore()
	guard := apartmentGuard(store)

	if err := guard.Insert(testResident("same@example.com", "1A")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := guard.Insert(testResident("same@example.com", "2B"))
	if err == nil {
		t.Fatalf("expected duplicate key to be rejected")
	}
	var dup domain.DuplicateEntityError
	if !errors.As(err, &dup) || dup.Constraint != "key" {
		t.Fatalf("expected key constraint violation, got %v", err)
	}
}

func TestGuardUpdateExcludesSelf(t *testing.T) {
	store := NewResidentStore()
	guard := apartmentGuard(store)

	resident := testResident("self@example.com", "7G")
	if err := guard.Insert(resident); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Re-saving with an unchanged apartment must not collide with itself.
	resident.Phone = "555-0100"
	if err := guard.Update(resident); err != nil {
		t.Fatalf("self update: %v", err)
	}

	if err := guard.Insert(testResident("other@example.com", "8H")); err != nil {
		t.Fatalf("second insert: %v", err)
	}
	resident.Apartment = "8H"
	if err := guard.Update(resident); err == nil {
		t.Fatalf("expected collision with other resident's apartment")
	}
}

func TestGuardUpdateRequiresExistingRecord(t *testing.T) {
	guard := apartmentGuard(NewResidentStore())

	err := guard.Update(testResident("ghost@example.com", "1A"))
	if err == nil {
		t.Fatalf("expected update of absent record to fail")
	}
	var notFound domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGuardSkipsEmptyAttributes(t *testing.T) {
	store := NewResidentStore()
	guard := NewUniquenessGuard(store,
		Constraint[domain.Resident]{Name: "phone", Extract: func(r domain.Resident) string { return r.Phone }},
	)

	first := testResident("a@example.com", "1A")
	second := testResident("b@example.com", "2B")
	if err := guard.Insert(first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Both records have an empty phone; empty values never collide.
	if err := guard.Insert(second); err != nil {
		t.Fatalf("insert with empty attribute: %v", err)
	}
}
