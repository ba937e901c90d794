package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// CaseRepo implements CaseRepository using PostgreSQL. All writes run inside a
// transaction with the complaint row locked, so concurrent transitions on the
// same complaint serialize and each one leaves exactly one audit row.
type CaseRepo struct{ db *DB }

// NewCaseRepo constructs a case repository.
func NewCaseRepo(db *DB) *CaseRepo { return &CaseRepo{db: db} }

const (
	selComplaintForUpdate = `SELECT status FROM complaints WHERE id=$1 FOR UPDATE`
	updComplaintStatus    = `UPDATE complaints SET status=$2, assigned_officer_id=COALESCE(assigned_officer_id, $3) WHERE id=$1`
	selCaseForUpdate      = `SELECT id FROM cases WHERE complaint_id=$1 FOR UPDATE`
	insCase               = `INSERT INTO cases (id, complaint_id, officer_id, status, report_ref) VALUES ($1,$2,$3,$4,$5) RETURNING date_registered`
	updCaseStatus         = `UPDATE cases SET status=$2 WHERE id=$1`
	insUpdate             = `INSERT INTO case_updates (id, case_id, officer_id, status, notes) VALUES ($1,$2,$3,$4,$5) RETURNING created_at`
)

// Transition moves a complaint to newStatus and appends the audit row.
func (r *CaseRepo) Transition(
	ctx context.Context, complaintID uuid.UUID, newStatus model.Status, officerID uuid.UUID, notes string,
) (upd *model.CaseUpdate, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
			upd = nil
		}
	}()

	var current string
	if err = tx.QueryRow(ctx, selComplaintForUpdate, complaintID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	cur := model.Status(current)
	if !cur.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%s -> %s: %w", cur, newStatus, errs.ErrInvalidTransition)
	}

	if _, err = tx.Exec(ctx, updComplaintStatus, complaintID, string(newStatus), officerID); err != nil {
		return nil, err
	}

	var caseID uuid.UUID
	scanErr := tx.QueryRow(ctx, selCaseForUpdate, complaintID).Scan(&caseID)
	switch {
	case scanErr == nil:
		if _, err = tx.Exec(ctx, updCaseStatus, caseID, string(newStatus)); err != nil {
			return nil, err
		}
	case errors.Is(scanErr, pgx.ErrNoRows):
		caseID, err = uuid.NewV4()
		if err != nil {
			return nil, err
		}
		var registeredAt any
		if err = tx.QueryRow(ctx, insCase, caseID, complaintID, officerID, string(newStatus), "").Scan(&registeredAt); err != nil {
			return nil, err
		}
	default:
		return nil, scanErr
	}

	updateID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	u := model.CaseUpdate{
		ID:        updateID,
		CaseID:    caseID,
		OfficerID: officerID,
		Status:    newStatus,
		Notes:     notes,
	}
	if err = tx.QueryRow(ctx, insUpdate, u.ID, u.CaseID, u.OfficerID, string(u.Status), u.Notes).Scan(&u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates the formal case record, moves the complaint to
// Under Investigation and appends the audit row.
func (r *CaseRepo) Register(
	ctx context.Context, complaintID, officerID uuid.UUID, reportRef string,
) (cs *model.Case, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
			cs = nil
		}
	}()

	var current string
	if err = tx.QueryRow(ctx, selComplaintForUpdate, complaintID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	var existing uuid.UUID
	scanErr := tx.QueryRow(ctx, selCaseForUpdate, complaintID).Scan(&existing)
	switch {
	case scanErr == nil:
		return nil, errs.ErrAlreadyExists
	case errors.Is(scanErr, pgx.ErrNoRows):
		// no case yet, proceed
	default:
		return nil, scanErr
	}

	cur := model.Status(current)
	if !cur.CanTransitionTo(model.StatusUnderInvestigation) {
		return nil, fmt.Errorf("%s -> %s: %w", cur, model.StatusUnderInvestigation, errs.ErrInvalidTransition)
	}

	if _, err = tx.Exec(ctx, updComplaintStatus, complaintID, string(model.StatusUnderInvestigation), officerID); err != nil {
		return nil, err
	}

	caseID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := model.Case{
		ID:          caseID,
		ComplaintID: complaintID,
		OfficerID:   officerID,
		Status:      model.StatusUnderInvestigation,
		ReportRef:   reportRef,
	}
	if err = tx.QueryRow(ctx, insCase, c.ID, c.ComplaintID, c.OfficerID, string(c.Status), c.ReportRef).Scan(&c.DateRegistered); err != nil {
		return nil, err
	}

	updateID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	var createdAt any
	if err = tx.QueryRow(ctx, insUpdate, updateID, c.ID, officerID, string(model.StatusUnderInvestigation), "case registered").Scan(&createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByComplaint loads the case registered for a complaint.
func (r *CaseRepo) GetByComplaint(ctx context.Context, complaintID uuid.UUID) (*model.Case, error) {
	const q = `
SELECT id, complaint_id, officer_id, status, report_ref, date_registered
FROM cases WHERE complaint_id=$1`
	var (
		c      model.Case
		status string
	)
	err := r.db.Pool.QueryRow(ctx, q, complaintID).Scan(
		&c.ID, &c.ComplaintID, &c.OfficerID, &status, &c.ReportRef, &c.DateRegistered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	c.Status = model.Status(status)
	return &c, nil
}

// ListUpdates returns the audit trail for a complaint, newest first.
func (r *CaseRepo) ListUpdates(ctx context.Context, complaintID uuid.UUID) ([]model.CaseUpdate, error) {
	const q = `
SELECT cu.id, cu.case_id, cu.officer_id, cu.status, cu.notes, cu.created_at
FROM case_updates cu
JOIN cases cs ON cs.id = cu.case_id
WHERE cs.complaint_id = $1
ORDER BY cu.created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CaseUpdate
	for rows.Next() {
		var (
			u      model.CaseUpdate
			status string
		)
		if err := rows.Scan(&u.ID, &u.CaseID, &u.OfficerID, &status, &u.Notes, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Status = model.Status(status)
		out = append(out, u)
	}
	return out, rows.Err()
}
