package repository

import (
	"context"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// EvidenceRepository stores metadata for files attached to complaints.
// Blob contents live in external storage; only paths are recorded here.
type EvidenceRepository interface {
	// Add inserts an evidence record.
	Add(ctx context.Context, e *model.Evidence) error
	// Get loads a single evidence record.
	Get(ctx context.Context, id uuid.UUID) (*model.Evidence, error)
	// ListByComplaint returns evidence for a complaint, newest upload first.
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]model.Evidence, error)
	// Delete removes an evidence record. The owning complaint is unaffected.
	Delete(ctx context.Context, id uuid.UUID) error
}
