package domain

import (
	"strings"
	"time"
)

// EntityType identifies the record families managed by the core.
type EntityType string

const (
	EntityResident       EntityType = "resident"
	EntityServiceRequest EntityType = "service_request"
)

// Keyed is the capability every stored record must provide. Keys are opaque
// strings, unique within a store, and immutable once a record is saved.
type Keyed interface {
	Key() string
	HasKey() bool
}

// ResidentRole tags a resident record with its access level. Roles are flat
// tags rather than a type hierarchy; role-specific data lives on the record.
type ResidentRole string

const (
	RoleResident      ResidentRole = "resident"
	RoleAdministrator ResidentRole = "administrator"
)

// Resident is a community member keyed by normalized email address.
type Resident struct {
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Apartment    string       `json:"apartment"`
	Phone        string       `json:"phone,omitempty"`
	Role         ResidentRole `json:"role"`
	Department   string       `json:"department,omitempty"`
	RegisteredAt time.Time    `json:"registered_at"`
}

// Key returns the resident identity key.
func (r Resident) Key() string { return r.Email }

// HasKey reports whether the resident carries a non-empty identity key.
func (r Resident) HasKey() bool { return strings.TrimSpace(r.Email) != "" }

// ServiceRequest tracks one unit of work through its lifecycle. Status is
// owned by the lifecycle service; ScheduledAt and CompletedAt are written
// exactly once, when the matching transition first succeeds.
type ServiceRequest struct {
	ID            string          `json:"id"`
	Category      ServiceCategory `json:"category"`
	Description   string          `json:"description"`
	Provider      string          `json:"provider"`
	EstimatedCost *float64        `json:"estimated_cost,omitempty"`
	Requester     string          `json:"requester"`
	Status        ServiceStatus   `json:"status"`
	RequestedAt   time.Time       `json:"requested_at"`
	ScheduledAt   *time.Time      `json:"scheduled_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// Key returns the request identifier.
func (s ServiceRequest) Key() string { return s.ID }

// HasKey reports whether the request has been assigned an identifier.
func (s ServiceRequest) HasKey() bool { return s.ID != "" }
