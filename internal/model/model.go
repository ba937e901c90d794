// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role distinguishes citizen accounts from police officers.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
)

// Severity is the triage tier assigned to a complaint at creation.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Score returns the numeric weight associated with the tier.
func (s Severity) Score() float64 {
	switch s {
	case SeverityLow:
		return 1
	case SeverityHigh:
		return 10
	default:
		return 5
	}
}

// Valid reports whether s is one of the three known tiers.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Status is the lifecycle state of a complaint and its case.
type Status string

const (
	StatusPending            Status = "Pending"
	StatusUnderInvestigation Status = "Under Investigation"
	StatusResolved           Status = "Resolved"
	StatusClosed             Status = "Closed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderInvestigation, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// transitions is the forward-only lifecycle graph. Same-state moves are not
// listed: repeating a status is rejected rather than treated as a no-op, and
// reopening (any backward move) is not permitted.
var transitions = map[Status][]Status{
	StatusPending:            {StatusUnderInvestigation},
	StatusUnderInvestigation: {StatusResolved, StatusClosed},
	StatusResolved:           {StatusClosed},
	StatusClosed:             {},
}

// CanTransitionTo reports whether the lifecycle graph permits moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// User is an account referenced by complaints, cases and audit rows.
// Never hard-deleted.
type User struct {
	ID          uuid.UUID
	Name        string
	Role        Role
	Email       string // unique
	Phone       string
	District    string
	BadgeNumber string // unique among officers, empty for citizens
	Department  string
	PwdHash     []byte
	PwdSalt     []byte
	CreatedAt   time.Time
}

// Complaint is the root record of the system: a citizen-filed incident report.
type Complaint struct {
	ID                uuid.UUID
	ReferenceNumber   string    // externally visible, unique, assigned once at creation
	CitizenID         uuid.UUID // uuid.Nil for unregistered filers
	CitizenName       string
	CitizenEmail      string
	CitizenPhone      string
	CrimeType         string
	Description       string
	Location          string
	Latitude          *float64
	Longitude         *float64
	IncidentDate      time.Time
	Severity          Severity
	SeverityScore     float64
	Status            Status
	DateFiled         time.Time // server-assigned, immutable
	AssignedOfficerID uuid.UUID // uuid.Nil until an officer acts on it
}

// Case is the formal investigation record for a complaint. At most one per complaint.
type Case struct {
	ID             uuid.UUID
	ComplaintID    uuid.UUID
	OfficerID      uuid.UUID // registering officer
	Status         Status    // mirrors the complaint status
	ReportRef      string    // opaque path/URI of the generated report artifact
	DateRegistered time.Time
}

// CaseUpdate is an append-only audit entry; exactly one is written per
// successful status transition.
type CaseUpdate struct {
	ID        uuid.UUID
	CaseID    uuid.UUID
	OfficerID uuid.UUID
	Status    Status
	Notes     string
	CreatedAt time.Time
}

// Evidence is a file attached to a complaint. Rows may be deleted
// independently of the complaint.
type Evidence struct {
	ID          uuid.UUID
	ComplaintID uuid.UUID
	FileName    string
	StoragePath string
	FileType    string // image, document, audio, video, other
	SizeBytes   int64
	UploadedBy  string
	Description string
	UploadedAt  time.Time
}

// Law is a static legal-reference catalog entry seeded by migration.
type Law struct {
	ID         uuid.UUID
	Title      string
	Descr      string
	Category   string // statute code, e.g. BNS or BNSS
	Punishment string
}
