package postgres

import (
	"context"
	"errors"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// EvidenceRepo implements EvidenceRepository using PostgreSQL.
type EvidenceRepo struct{ db *DB }

// NewEvidenceRepo constructs an evidence repository.
func NewEvidenceRepo(db *DB) *EvidenceRepo { return &EvidenceRepo{db: db} }

const evidenceColumns = `id, complaint_id, file_name, storage_path, file_type, size_bytes, uploaded_by, description, uploaded_at`

// Add inserts an evidence record.
func (r *EvidenceRepo) Add(ctx context.Context, e *model.Evidence) error {
	const q = `
INSERT INTO evidence (id, complaint_id, file_name, storage_path, file_type, size_bytes, uploaded_by, description)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING uploaded_at`
	return r.db.Pool.QueryRow(ctx, q,
		e.ID, e.ComplaintID, e.FileName, e.StoragePath, e.FileType, e.SizeBytes, e.UploadedBy, e.Description,
	).Scan(&e.UploadedAt)
}

// Get loads a single evidence record.
func (r *EvidenceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Evidence, error) {
	var e model.Evidence
	err := r.db.Pool.QueryRow(ctx, `SELECT `+evidenceColumns+` FROM evidence WHERE id=$1`, id).Scan(
		&e.ID, &e.ComplaintID, &e.FileName, &e.StoragePath, &e.FileType, &e.SizeBytes, &e.UploadedBy, &e.Description, &e.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByComplaint returns evidence for a complaint, newest upload first.
func (r *EvidenceRepo) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]model.Evidence, error) {
	const q = `SELECT ` + evidenceColumns + ` FROM evidence WHERE complaint_id=$1 ORDER BY uploaded_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Evidence
	for rows.Next() {
		var e model.Evidence
		if err := rows.Scan(&e.ID, &e.ComplaintID, &e.FileName, &e.StoragePath, &e.FileType, &e.SizeBytes, &e.UploadedBy, &e.Description, &e.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes an evidence record.
func (r *EvidenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM evidence WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
