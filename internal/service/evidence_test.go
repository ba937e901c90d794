package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

type fakeEvidence struct {
	byID map[uuid.UUID]*model.Evidence

	addErr error
	added  []model.Evidence
}

var _ repository.EvidenceRepository = (*fakeEvidence)(nil)

func (f *fakeEvidence) Add(_ context.Context, e *model.Evidence) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.byID == nil {
		f.byID = map[uuid.UUID]*model.Evidence{}
	}
	cpy := *e
	f.byID[e.ID] = &cpy
	f.added = append(f.added, cpy)
	return nil
}
func (f *fakeEvidence) Get(_ context.Context, id uuid.UUID) (*model.Evidence, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *e
	return &cpy, nil
}
func (f *fakeEvidence) ListByComplaint(_ context.Context, complaintID uuid.UUID) ([]model.Evidence, error) {
	var out []model.Evidence
	for _, e := range f.byID {
		if e.ComplaintID == complaintID {
			out = append(out, *e)
		}
	}
	return out, nil
}
func (f *fakeEvidence) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeBlobs struct {
	saveErr error
	saves   int
	deleted []string
}

var _ BlobStore = (*fakeBlobs)(nil)

func (b *fakeBlobs) Save(_ context.Context, complaintID uuid.UUID, fileName string, r io.Reader) (string, int64, error) {
	if b.saveErr != nil {
		return "", 0, b.saveErr
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", 0, err
	}
	b.saves++
	return fmt.Sprintf("blobs/%s/%s", complaintID, fileName), n, nil
}
func (b *fakeBlobs) Delete(_ context.Context, path string) error {
	b.deleted = append(b.deleted, path)
	return nil
}

func evidenceFixtures(t *testing.T) (*fakeEvidence, *fakeComplaints, *fakeBlobs, *EvidenceServiceImpl, uuid.UUID) {
	t.Helper()
	complaintID := uuid.Must(uuid.NewV4())
	complaints := &fakeComplaints{byID: map[uuid.UUID]*model.Complaint{
		complaintID: {ID: complaintID},
	}}
	repo := &fakeEvidence{}
	blobs := &fakeBlobs{}
	return repo, complaints, blobs, NewEvidenceService(repo, complaints, blobs), complaintID
}

func TestEvidence_Attach_OK(t *testing.T) {
	t.Parallel()
	repo, _, blobs, s, complaintID := evidenceFixtures(t)

	e, err := s.Attach(context.Background(), AttachEvidence{
		ComplaintID: complaintID,
		FileName:    "cctv.MP4",
		Size:        4,
		Content:     strings.NewReader("data"),
	})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if e.FileType != "video" {
		t.Fatalf("want video, got %s", e.FileType)
	}
	if e.SizeBytes != 4 {
		t.Fatalf("want stored size 4, got %d", e.SizeBytes)
	}
	if len(repo.added) != 1 || blobs.saves != 1 {
		t.Fatalf("record or blob missing: %d %d", len(repo.added), blobs.saves)
	}
	if len(blobs.deleted) != 0 {
		t.Fatalf("unexpected blob deletion: %v", blobs.deleted)
	}
}

func TestEvidence_Attach_Validation(t *testing.T) {
	t.Parallel()
	_, _, _, s, complaintID := evidenceFixtures(t)
	ctx := context.Background()

	if _, err := s.Attach(ctx, AttachEvidence{FileName: "a.jpg", Content: strings.NewReader("x")}); !errs.IsValidation(err) {
		t.Fatalf("nil complaint id: want validation error, got %v", err)
	}
	if _, err := s.Attach(ctx, AttachEvidence{ComplaintID: complaintID, Content: strings.NewReader("x")}); !errs.IsValidation(err) {
		t.Fatalf("empty file name: want validation error, got %v", err)
	}
	if _, err := s.Attach(ctx, AttachEvidence{ComplaintID: complaintID, FileName: "a.jpg"}); !errs.IsValidation(err) {
		t.Fatalf("nil content: want validation error, got %v", err)
	}
	if _, err := s.Attach(ctx, AttachEvidence{
		ComplaintID: complaintID, FileName: "a.jpg", Size: MaxEvidenceSize + 1, Content: strings.NewReader("x"),
	}); !errs.IsValidation(err) {
		t.Fatalf("declared oversize: want validation error, got %v", err)
	}
}

func TestEvidence_Attach_UnknownComplaint(t *testing.T) {
	t.Parallel()
	_, _, _, s, _ := evidenceFixtures(t)

	_, err := s.Attach(context.Background(), AttachEvidence{
		ComplaintID: uuid.Must(uuid.NewV4()),
		FileName:    "a.jpg",
		Content:     strings.NewReader("x"),
	})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEvidence_Attach_OversizeStreamDeletesBlob(t *testing.T) {
	t.Parallel()
	_, _, blobs, s, complaintID := evidenceFixtures(t)

	// declared size lies; the stream itself exceeds the cap
	big := io.MultiReader(
		strings.NewReader(strings.Repeat("a", 1<<20)),
		infiniteReader{},
	)
	_, err := s.Attach(context.Background(), AttachEvidence{
		ComplaintID: complaintID,
		FileName:    "dump.bin",
		Size:        100,
		Content:     big,
	})
	if !errs.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(blobs.deleted) != 1 {
		t.Fatalf("oversize blob must be cleaned up, deletions: %v", blobs.deleted)
	}
}

func TestEvidence_Attach_RecordFailureDeletesBlob(t *testing.T) {
	t.Parallel()
	repo, _, blobs, s, complaintID := evidenceFixtures(t)
	repo.addErr = errors.New("db down")

	_, err := s.Attach(context.Background(), AttachEvidence{
		ComplaintID: complaintID,
		FileName:    "a.jpg",
		Content:     strings.NewReader("x"),
	})
	if err == nil {
		t.Fatalf("want repo error")
	}
	if len(blobs.deleted) != 1 {
		t.Fatalf("orphan blob must be cleaned up, deletions: %v", blobs.deleted)
	}
}

func TestEvidence_Remove_DeletesRecordThenBlob(t *testing.T) {
	t.Parallel()
	repo, _, blobs, s, complaintID := evidenceFixtures(t)

	e, err := s.Attach(context.Background(), AttachEvidence{
		ComplaintID: complaintID,
		FileName:    "a.jpg",
		Size:        1,
		Content:     strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := s.Remove(context.Background(), e.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := repo.Get(context.Background(), e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("record still present: %v", err)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != e.StoragePath {
		t.Fatalf("blob not removed: %v", blobs.deleted)
	}

	if err := s.Remove(context.Background(), e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second remove: want ErrNotFound, got %v", err)
	}
}

// infiniteReader never returns EOF; LimitReader must bound the copy.
type infiniteReader struct{}

func (infiniteReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'a'
	}
	return len(p), nil
}
