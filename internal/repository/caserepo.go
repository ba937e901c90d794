package repository

import (
	"context"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CaseRepository implements the status transition engine over complaints,
// cases and the append-only audit trail.
type CaseRepository interface {
	// Transition atomically moves a complaint to newStatus, creating the case
	// on first transition, and appends exactly one audit row. Returns
	// ErrNotFound for an unknown complaint and ErrInvalidTransition when the
	// lifecycle graph forbids the move; on any error no state changes.
	Transition(ctx context.Context, complaintID uuid.UUID, newStatus model.Status, officerID uuid.UUID, notes string) (*model.CaseUpdate, error)

	// Register creates the formal case for a complaint, moves it to
	// Under Investigation and appends the audit row. ErrAlreadyExists when a
	// case is already registered for the complaint.
	Register(ctx context.Context, complaintID, officerID uuid.UUID, reportRef string) (*model.Case, error)

	// GetByComplaint loads the case registered for a complaint, if any.
	GetByComplaint(ctx context.Context, complaintID uuid.UUID) (*model.Case, error)

	// ListUpdates returns the audit trail for a complaint, newest first.
	ListUpdates(ctx context.Context, complaintID uuid.UUID) ([]model.CaseUpdate, error)
}
