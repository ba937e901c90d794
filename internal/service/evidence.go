package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

// MaxEvidenceSize caps a single evidence upload.
const MaxEvidenceSize = 10 << 20 // 10 MB

// evidenceTypes maps file extensions to the stored type category.
var evidenceTypes = map[string]string{
	".jpg": "image", ".jpeg": "image", ".png": "image", ".gif": "image",
	".bmp": "image", ".tiff": "image", ".webp": "image",
	".pdf": "document", ".doc": "document", ".docx": "document",
	".txt": "document", ".rtf": "document",
	".mp3": "audio", ".wav": "audio", ".m4a": "audio", ".ogg": "audio", ".aac": "audio",
	".mp4": "video", ".avi": "video", ".mov": "video", ".wmv": "video",
	".mkv": "video", ".webm": "video",
	".zip": "other", ".rar": "other", ".7z": "other",
}

// DetectFileType categorizes a file name by extension.
func DetectFileType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := evidenceTypes[ext]; ok {
		return t
	}
	return "other"
}

// BlobStore is the external storage collaborator holding evidence contents.
type BlobStore interface {
	// Save stores the blob and returns its storage path.
	Save(ctx context.Context, complaintID uuid.UUID, fileName string, r io.Reader) (string, int64, error)
	// Delete removes a stored blob.
	Delete(ctx context.Context, path string) error
}

// AttachEvidence is the input for attaching a file to a complaint.
type AttachEvidence struct {
	ComplaintID uuid.UUID
	FileName    string
	Description string
	UploadedBy  string
	Size        int64
	Content     io.Reader
}

// EvidenceService stores and lists files attached to complaints.
type EvidenceService interface {
	// Attach stores the blob and records its metadata. If the record insert
	// fails the stored blob is deleted again, so no orphan files remain.
	Attach(ctx context.Context, in AttachEvidence) (*model.Evidence, error)
	// List returns evidence metadata for a complaint, newest first.
	List(ctx context.Context, complaintID uuid.UUID) ([]model.Evidence, error)
	// Remove deletes the record and, best-effort, the blob.
	Remove(ctx context.Context, id uuid.UUID) error
}

type EvidenceServiceImpl struct {
	repo       repository.EvidenceRepository
	complaints repository.ComplaintRepository
	blobs      BlobStore
}

// NewEvidenceService constructs EvidenceService.
func NewEvidenceService(repo repository.EvidenceRepository, complaints repository.ComplaintRepository, blobs BlobStore) *EvidenceServiceImpl {
	return &EvidenceServiceImpl{repo: repo, complaints: complaints, blobs: blobs}
}

// Attach validates the upload, stores the blob, then records metadata,
// compensating with a blob delete if the record cannot be written.
func (s *EvidenceServiceImpl) Attach(ctx context.Context, in AttachEvidence) (*model.Evidence, error) {
	switch {
	case in.ComplaintID == uuid.Nil:
		return nil, errs.Validation("complaint_id", "required")
	case in.FileName == "":
		return nil, errs.Validation("file_name", "required")
	case in.Content == nil:
		return nil, errs.Validation("content", "required")
	case in.Size > MaxEvidenceSize:
		return nil, errs.Validation("size", "exceeds 10MB limit")
	}
	if _, err := s.complaints.GetByID(ctx, in.ComplaintID); err != nil {
		return nil, err
	}

	path, size, err := s.blobs.Save(ctx, in.ComplaintID, in.FileName, io.LimitReader(in.Content, MaxEvidenceSize+1))
	if err != nil {
		return nil, err
	}
	if size > MaxEvidenceSize {
		_ = s.blobs.Delete(ctx, path)
		return nil, errs.Validation("size", "exceeds 10MB limit")
	}

	id, err := uuid.NewV4()
	if err != nil {
		_ = s.blobs.Delete(ctx, path)
		return nil, err
	}
	e := &model.Evidence{
		ID:          id,
		ComplaintID: in.ComplaintID,
		FileName:    in.FileName,
		StoragePath: path,
		FileType:    DetectFileType(in.FileName),
		SizeBytes:   size,
		UploadedBy:  in.UploadedBy,
		Description: in.Description,
	}
	if err := s.repo.Add(ctx, e); err != nil {
		// the DB write failed after the blob was stored; clean the orphan up
		_ = s.blobs.Delete(ctx, path)
		return nil, err
	}
	return e, nil
}

// List returns evidence metadata for a complaint.
func (s *EvidenceServiceImpl) List(ctx context.Context, complaintID uuid.UUID) ([]model.Evidence, error) {
	if complaintID == uuid.Nil {
		return nil, errs.Validation("complaint_id", "required")
	}
	return s.repo.ListByComplaint(ctx, complaintID)
}

// Remove deletes the record first (the authoritative state), then the blob.
func (s *EvidenceServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.Validation("evidence_id", "required")
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.blobs.Delete(ctx, e.StoragePath)
	return nil
}
