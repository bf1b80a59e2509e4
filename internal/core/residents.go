package core

import (
	"context"
	"sort"
	"strings"

	"communitycore/pkg/domain"
)

func cloneResident(r domain.Resident) domain.Resident { return r }

// NewResidentStore constructs a store for resident records.
func NewResidentStore() *Store[domain.Resident] {
	return NewStore(domain.EntityResident, cloneResident)
}

// ResidentDirectory manages resident registration. Email is the identity
// key; apartment occupancy is enforced as a uniqueness constraint.
type ResidentDirectory struct {
	residents *Store[domain.Resident]
	guard     *UniquenessGuard[domain.Resident]
	inst      instrumentation
}

// NewResidentDirectory constructs a directory over the supplied store.
func NewResidentDirectory(residents *Store[domain.Resident], opts ...Option) *ResidentDirectory {
	inst := defaultInstrumentation()
	for _, opt := range opts {
		opt(&inst)
	}
	guard := NewUniquenessGuard(residents,
		Constraint[domain.Resident]{Name: "email", Extract: func(r domain.Resident) string { return r.Email }},
		Constraint[domain.Resident]{Name: "apartment", Extract: func(r domain.Resident) string { return r.Apartment }},
	)
	return &ResidentDirectory{residents: residents, guard: guard, inst: inst}
}

// NewInMemoryResidentDirectory creates a directory with a fresh store.
func NewInMemoryResidentDirectory(opts ...Option) *ResidentDirectory {
	return NewResidentDirectory(NewResidentStore(), opts...)
}

// Store returns the underlying resident store.
func (d *ResidentDirectory) Store() *Store[domain.Resident] {
	return d.residents
}

// normalizeResident trims the record's fields and lowercases the email key.
func normalizeResident(r domain.Resident) domain.Resident {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Apartment = strings.TrimSpace(r.Apartment)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Role == "" {
		r.Role = domain.RoleResident
	}
	return r
}

func validateResident(op string, r domain.Resident) error {
	switch {
	case r.Email == "":
		return domain.InvalidArgumentError{Op: op, Field: "email", Reason: "must not be empty"}
	case !strings.Contains(r.Email, "@"):
		return domain.InvalidArgumentError{Op: op, Field: "email", Reason: "must contain @"}
	case r.Name == "":
		return domain.InvalidArgumentError{Op: op, Field: "name", Reason: "must not be empty"}
	case r.Apartment == "":
		return domain.InvalidArgumentError{Op: op, Field: "apartment", Reason: "must not be empty"}
	}
	return nil
}

// RegisterResident validates, normalizes, stamps, and inserts a new resident.
// A duplicate email or an occupied apartment fails before any mutation.
func (d *ResidentDirectory) RegisterResident(ctx context.Context, resident domain.Resident) (domain.Resident, error) {
	finish := d.inst.observe(ctx, "register_resident")

	resident = normalizeResident(resident)
	if err := validateResident("register_resident", resident); err != nil {
		finish(resident.Email, err)
		return domain.Resident{}, err
	}
	resident.RegisteredAt = d.inst.now()
	if err := d.guard.Insert(resident); err != nil {
		finish(resident.Email, err)
		return domain.Resident{}, err
	}
	finish(resident.Email, nil)
	return resident, nil
}

// UpdateResident applies the mutator to an existing resident and re-verifies
// uniqueness against all other records. The email key and registration stamp
// are pinned across the mutation.
func (d *ResidentDirectory) UpdateResident(ctx context.Context, email string, mutator func(*domain.Resident) error) (domain.Resident, error) {
	finish := d.inst.observe(ctx, "update_resident")

	email = strings.ToLower(strings.TrimSpace(email))
	current, ok := d.residents.FindByKey(email)
	if !ok {
		err := domain.NotFoundError{Entity: domain.EntityResident, Key: email, Op: "update_resident"}
		finish(email, err)
		return domain.Resident{}, err
	}
	working := cloneResident(current)
	if err := mutator(&working); err != nil {
		finish(email, err)
		return domain.Resident{}, err
	}
	working = normalizeResident(working)
	working.Email = email
	working.RegisteredAt = current.RegisteredAt
	if err := validateResident("update_resident", working); err != nil {
		finish(email, err)
		return domain.Resident{}, err
	}
	if err := d.guard.Update(working); err != nil {
		finish(email, err)
		return domain.Resident{}, err
	}
	finish(email, nil)
	return working, nil
}

// RemoveResident deletes a resident by email.
func (d *ResidentDirectory) RemoveResident(ctx context.Context, email string) error {
	finish := d.inst.observe(ctx, "remove_resident")

	email = strings.ToLower(strings.TrimSpace(email))
	if !d.residents.DeleteByKey(email) {
		err := domain.NotFoundError{Entity: domain.EntityResident, Key: email, Op: "remove_resident"}
		finish(email, err)
		return err
	}
	finish(email, nil)
	return nil
}

// FindByEmail retrieves a resident by identity key.
func (d *ResidentDirectory) FindByEmail(email string) (domain.Resident, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	resident, ok := d.residents.FindByKey(email)
	if !ok {
		return domain.Resident{}, domain.NotFoundError{Entity: domain.EntityResident, Key: email}
	}
	return resident, nil
}

// FindByApartment retrieves the occupant of an apartment, matching
// case-insensitively on the trimmed unit code.
func (d *ResidentDirectory) FindByApartment(apartment string) (domain.Resident, bool) {
	want := normalizeAttr(apartment)
	if want == "" {
		return domain.Resident{}, false
	}
	return d.residents.FindFirst(func(r domain.Resident) bool {
		return normalizeAttr(r.Apartment) == want
	})
}

// ApartmentAvailable reports whether no resident occupies the apartment.
func (d *ResidentDirectory) ApartmentAvailable(apartment string) bool {
	_, occupied := d.FindByApartment(apartment)
	return !occupied
}

// ListResidents returns all residents ordered by apartment code.
func (d *ResidentDirectory) ListResidents() []domain.Resident {
	residents := d.residents.ListAll()
	sort.Slice(residents, func(i, j int) bool {
		a, b := residents[i], residents[j]
		if a.Apartment != b.Apartment {
			return a.Apartment < b.Apartment
		}
		return a.Email < b.Email
	})
	return residents
}
