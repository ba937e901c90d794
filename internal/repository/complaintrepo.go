package repository

import (
	"context"
	"time"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// SearchFilter is the conjunctive predicate for complaint search and count.
// Zero values mean "no constraint".
type SearchFilter struct {
	// Query matches case-insensitively against reference number, crime type,
	// location, description and citizen name (OR across those fields).
	Query     string
	Severity  model.Severity
	Status    model.Status
	CrimeType string
	// Location is a case-insensitive substring match.
	Location string
	// FiledFrom/FiledTo bound the filing timestamp, inclusive.
	FiledFrom *time.Time
	FiledTo   *time.Time
	// CitizenID scopes results to one filer; callers set it for citizen views.
	CitizenID uuid.UUID

	Limit  int // 0 means unbounded
	Offset int
}

// DailyCount is one day of filing volume split by severity tier.
type DailyCount struct {
	Date   time.Time
	Total  int64
	High   int64
	Medium int64
	Low    int64
}

// CategoryResolution is the average time-to-resolution for one crime type.
type CategoryResolution struct {
	CrimeType string
	Resolved  int64
	AvgDays   float64
}

// Statistics is the dashboard rollup over a filing-date range.
type Statistics struct {
	Total      int64
	ByStatus   map[model.Status]int64
	BySeverity map[model.Severity]int64
	ByCategory map[string]int64
	Daily      []DailyCount
	Resolution []CategoryResolution
}

// ComplaintRepository provides storage and querying for complaints.
type ComplaintRepository interface {
	// Create inserts a new complaint. ErrAlreadyExists signals a reference
	// number collision; callers regenerate and retry.
	Create(ctx context.Context, c *model.Complaint) error
	// GetByID loads a complaint by internal ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	// GetByReference loads a complaint by its external reference number.
	GetByReference(ctx context.Context, ref string) (*model.Complaint, error)
	// Search returns complaints matching the filter, newest filing first.
	Search(ctx context.Context, f SearchFilter) ([]model.Complaint, error)
	// Count returns the number of complaints matching the same predicate as Search.
	Count(ctx context.Context, f SearchFilter) (int64, error)
	// ListPending returns the triage queue: pending complaints ordered by
	// severity (High first) then filing time (oldest first).
	ListPending(ctx context.Context) ([]model.Complaint, error)
	// Statistics computes dashboard rollups over the inclusive filing-date range.
	Statistics(ctx context.Context, from, to time.Time) (*Statistics, error)
}
