package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

// CaseService is the status transition engine exposed to the API layer.
type CaseService interface {
	// Transition moves a complaint to newStatus and returns the audit row.
	Transition(ctx context.Context, complaintID uuid.UUID, newStatus model.Status, officerID uuid.UUID, notes string) (*model.CaseUpdate, error)
	// Register files the formal case and moves the complaint to Under Investigation.
	Register(ctx context.Context, complaintID, officerID uuid.UUID, reportRef string) (*model.Case, error)
	// Get returns the registered case for a complaint.
	Get(ctx context.Context, complaintID uuid.UUID) (*model.Case, error)
	// Updates returns the audit trail for a complaint, newest first.
	Updates(ctx context.Context, complaintID uuid.UUID) ([]model.CaseUpdate, error)
}

type CaseServiceImpl struct {
	repo repository.CaseRepository
}

// NewCaseService constructs CaseService.
func NewCaseService(repo repository.CaseRepository) *CaseServiceImpl {
	return &CaseServiceImpl{repo: repo}
}

// Transition validates input and delegates the atomic move to the repository.
// Graph checks run inside the repository transaction where the current status
// is read under lock.
func (s *CaseServiceImpl) Transition(
	ctx context.Context, complaintID uuid.UUID, newStatus model.Status, officerID uuid.UUID, notes string,
) (*model.CaseUpdate, error) {
	if complaintID == uuid.Nil {
		return nil, errs.Validation("complaint_id", "required")
	}
	if officerID == uuid.Nil {
		return nil, errs.Validation("officer_id", "required")
	}
	if !newStatus.Valid() {
		return nil, errs.Validation("status", "unknown status")
	}
	return s.repo.Transition(ctx, complaintID, newStatus, officerID, notes)
}

// Register validates input and delegates case registration to the repository.
func (s *CaseServiceImpl) Register(
	ctx context.Context, complaintID, officerID uuid.UUID, reportRef string,
) (*model.Case, error) {
	if complaintID == uuid.Nil {
		return nil, errs.Validation("complaint_id", "required")
	}
	if officerID == uuid.Nil {
		return nil, errs.Validation("officer_id", "required")
	}
	return s.repo.Register(ctx, complaintID, officerID, reportRef)
}

// Get returns the registered case for a complaint.
func (s *CaseServiceImpl) Get(ctx context.Context, complaintID uuid.UUID) (*model.Case, error) {
	if complaintID == uuid.Nil {
		return nil, errs.Validation("complaint_id", "required")
	}
	return s.repo.GetByComplaint(ctx, complaintID)
}

// Updates returns the audit trail for a complaint.
func (s *CaseServiceImpl) Updates(ctx context.Context, complaintID uuid.UUID) ([]model.CaseUpdate, error) {
	if complaintID == uuid.Nil {
		return nil, errs.Validation("complaint_id", "required")
	}
	return s.repo.ListUpdates(ctx, complaintID)
}
