// Package service contains application services over the complaint store.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/cache"
	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/refnum"
	"github.com/anilvs/casetrack/internal/repository"
	"github.com/anilvs/casetrack/internal/severity"
)

// refnumAttempts bounds insert retries on a reference number collision.
const refnumAttempts = 3

// SubmitComplaint is the input for filing a new complaint.
type SubmitComplaint struct {
	CitizenID    uuid.UUID // uuid.Nil for unregistered filers
	CitizenName  string
	CitizenEmail string
	CitizenPhone string
	CrimeType    string
	Description  string
	Location     string
	Latitude     *float64
	Longitude    *float64
	IncidentDate time.Time
}

// ComplaintService defines complaint filing, lookup, search and statistics.
type ComplaintService interface {
	// Submit validates and files a new complaint; severity is classified
	// here and the reference number assigned exactly once.
	Submit(ctx context.Context, in SubmitComplaint) (*model.Complaint, error)
	// GetByReference returns a complaint by its external reference number.
	GetByReference(ctx context.Context, ref string) (*model.Complaint, error)
	// Search returns one page of matches plus the total count for the same predicate.
	Search(ctx context.Context, f repository.SearchFilter) ([]model.Complaint, int64, error)
	// ListPending returns the severity-then-age ordered triage queue.
	ListPending(ctx context.Context) ([]model.Complaint, error)
	// Statistics computes dashboard rollups over the inclusive filing range.
	Statistics(ctx context.Context, from, to time.Time) (*repository.Statistics, error)
}

type ComplaintServiceImpl struct {
	repo  repository.ComplaintRepository
	stats *cache.Cache // optional, may be nil
	now   func() time.Time
}

// NewComplaintService constructs ComplaintService. stats may be nil to
// disable statistics caching.
func NewComplaintService(repo repository.ComplaintRepository, stats *cache.Cache) *ComplaintServiceImpl {
	return &ComplaintServiceImpl{repo: repo, stats: stats, now: time.Now}
}

// Submit validates input, classifies severity and inserts the complaint,
// regenerating the reference number on a collision.
func (s *ComplaintServiceImpl) Submit(ctx context.Context, in SubmitComplaint) (*model.Complaint, error) {
	switch {
	case in.CitizenName == "":
		return nil, errs.Validation("citizen_name", "required")
	case in.CitizenEmail == "":
		return nil, errs.Validation("citizen_email", "required")
	case in.CitizenPhone == "":
		return nil, errs.Validation("citizen_phone", "required")
	case in.CrimeType == "":
		return nil, errs.Validation("crime_type", "required")
	case in.Description == "":
		return nil, errs.Validation("description", "required")
	case in.Location == "":
		return nil, errs.Validation("location", "required")
	case in.IncidentDate.IsZero():
		return nil, errs.Validation("incident_date", "required")
	case in.IncidentDate.After(s.now()):
		return nil, errs.Validation("incident_date", "must not be in the future")
	}

	tier := severity.Classify(in.CrimeType, in.Description)
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Complaint{
		ID:            id,
		CitizenID:     in.CitizenID,
		CitizenName:   in.CitizenName,
		CitizenEmail:  in.CitizenEmail,
		CitizenPhone:  in.CitizenPhone,
		CrimeType:     in.CrimeType,
		Description:   in.Description,
		Location:      in.Location,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		IncidentDate:  in.IncidentDate,
		Severity:      tier,
		SeverityScore: tier.Score(),
	}

	for attempt := 0; attempt < refnumAttempts; attempt++ {
		c.ReferenceNumber, err = refnum.New(s.now())
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			return nil, err
		}
	}
	return nil, err
}

// GetByReference returns a complaint by reference number.
func (s *ComplaintServiceImpl) GetByReference(ctx context.Context, ref string) (*model.Complaint, error) {
	if ref == "" {
		return nil, errs.Validation("reference_number", "required")
	}
	return s.repo.GetByReference(ctx, ref)
}

// Search runs the paged query and the count over the identical predicate.
func (s *ComplaintServiceImpl) Search(ctx context.Context, f repository.SearchFilter) ([]model.Complaint, int64, error) {
	if f.Limit < 0 {
		return nil, 0, errs.Validation("limit", "must not be negative")
	}
	if f.Offset < 0 {
		return nil, 0, errs.Validation("offset", "must not be negative")
	}
	if f.Severity != "" && !f.Severity.Valid() {
		return nil, 0, errs.Validation("severity", "unknown tier")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, errs.Validation("status", "unknown status")
	}
	if f.FiledFrom != nil && f.FiledTo != nil && f.FiledTo.Before(*f.FiledFrom) {
		return nil, 0, errs.Validation("filed_to", "before filed_from")
	}

	items, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListPending returns the triage queue.
func (s *ComplaintServiceImpl) ListPending(ctx context.Context) ([]model.Complaint, error) {
	return s.repo.ListPending(ctx)
}

// Statistics computes rollups, serving recent results from the cache when one
// is configured.
func (s *ComplaintServiceImpl) Statistics(ctx context.Context, from, to time.Time) (*repository.Statistics, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}
	if to.Before(from) {
		return nil, errs.Validation("to", "before from")
	}

	key := "stats:" + from.Format(time.RFC3339) + ":" + to.Format(time.RFC3339)
	if s.stats != nil {
		var cached repository.Statistics
		if ok, err := s.stats.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	stats, err := s.repo.Statistics(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if s.stats != nil {
		// best-effort; a cache failure must not fail the dashboard
		_ = s.stats.Set(ctx, key, stats)
	}
	return stats, nil
}
