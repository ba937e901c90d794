package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

func sampleComplaint() *model.Complaint {
	return &model.Complaint{
		ID:              uuid.Must(uuid.NewV4()),
		ReferenceNumber: "CR20260815A1B2C3",
		CitizenID:       uuid.Must(uuid.NewV4()),
		CitizenName:     "Asha Verma",
		CitizenEmail:    "asha@example.com",
		CitizenPhone:    "+91-9876543210",
		CrimeType:       "Theft",
		Description:     "phone stolen at the market",
		Location:        "MG Road",
		IncidentDate:    time.Now().Add(-24 * time.Hour),
		Severity:        model.SeverityMedium,
		SeverityScore:   5,
	}
}

func complaintRow(c *model.Complaint) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "reference_number", "citizen_id", "citizen_name", "citizen_email", "citizen_phone",
		"crime_type", "description", "location", "latitude", "longitude", "incident_date",
		"severity", "severity_score", "status", "date_filed", "assigned_officer_id",
	}).AddRow(
		c.ID, c.ReferenceNumber, &c.CitizenID, c.CitizenName, c.CitizenEmail, c.CitizenPhone,
		c.CrimeType, c.Description, c.Location, c.Latitude, c.Longitude, c.IncidentDate,
		string(c.Severity), c.SeverityScore, "Pending", time.Now(), (*uuid.UUID)(nil),
	)
}

func TestComplaintRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	c := sampleComplaint()
	filed := time.Now()

	mock.ExpectQuery(`INSERT INTO complaints`).
		WithArgs(c.ID, c.ReferenceNumber, pgxmock.AnyArg(), c.CitizenName, c.CitizenEmail, c.CitizenPhone,
			c.CrimeType, c.Description, c.Location, pgxmock.AnyArg(), pgxmock.AnyArg(), c.IncidentDate,
			"Medium", 5.0).
		WillReturnRows(pgxmock.NewRows([]string{"status", "date_filed"}).AddRow("Pending", filed))

	require.NoError(t, r.Create(context.Background(), c))
	require.Equal(t, model.StatusPending, c.Status)
	require.Equal(t, filed, c.DateFiled)
}

func TestComplaintRepo_Create_ReferenceCollision(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	c := sampleComplaint()
	mock.ExpectQuery(`INSERT INTO complaints`).
		WithArgs(c.ID, c.ReferenceNumber, pgxmock.AnyArg(), c.CitizenName, c.CitizenEmail, c.CitizenPhone,
			c.CrimeType, c.Description, c.Location, pgxmock.AnyArg(), pgxmock.AnyArg(), c.IncidentDate,
			"Medium", 5.0).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	require.ErrorIs(t, r.Create(context.Background(), c), errs.ErrAlreadyExists)
}

func TestComplaintRepo_GetByReference_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	c := sampleComplaint()
	mock.ExpectQuery(`FROM complaints WHERE reference_number=\$1`).
		WithArgs(c.ReferenceNumber).
		WillReturnRows(complaintRow(c))

	got, err := r.GetByReference(context.Background(), c.ReferenceNumber)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, model.StatusPending, got.Status)
	require.Equal(t, uuid.Nil, got.AssignedOfficerID)
}

func TestComplaintRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`FROM complaints WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBuildWhere_Empty(t *testing.T) {
	where, args := buildWhere(repository.SearchFilter{})
	require.Equal(t, "", where)
	require.Nil(t, args)
}

func TestBuildWhere_TextQueryBindsOnce(t *testing.T) {
	where, args := buildWhere(repository.SearchFilter{Query: "theft"})
	require.Equal(t,
		` WHERE (reference_number ILIKE $1 OR crime_type ILIKE $1 OR location ILIKE $1 OR description ILIKE $1 OR citizen_name ILIKE $1)`,
		where)
	require.Equal(t, []any{"%theft%"}, args)
}

func TestBuildWhere_AllFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	citizen := uuid.Must(uuid.NewV4())

	where, args := buildWhere(repository.SearchFilter{
		Query:     "market",
		Severity:  model.SeverityHigh,
		Status:    model.StatusPending,
		CrimeType: "Theft",
		Location:  "MG Road",
		FiledFrom: &from,
		FiledTo:   &to,
		CitizenID: citizen,
	})
	require.Equal(t,
		` WHERE (reference_number ILIKE $1 OR crime_type ILIKE $1 OR location ILIKE $1 OR description ILIKE $1 OR citizen_name ILIKE $1)`+
			` AND severity = $2 AND status = $3 AND crime_type = $4 AND location ILIKE $5`+
			` AND date_filed >= $6 AND date_filed <= $7 AND citizen_id = $8`,
		where)
	require.Equal(t, []any{"%market%", "High", "Pending", "Theft", "%MG Road%", from, to, citizen}, args)
}

// Search and Count share buildWhere, so the page and the total can never
// disagree on the predicate.
func TestComplaintRepo_SearchAndCount_SamePredicate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	f := repository.SearchFilter{Status: model.StatusPending, Limit: 10, Offset: 20}
	c := sampleComplaint()

	mock.ExpectQuery(`FROM complaints WHERE status = \$1 ORDER BY date_filed DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("Pending", 10, 20).
		WillReturnRows(complaintRow(c))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints WHERE status = \$1`).
		WithArgs("Pending").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	items, err := r.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, items, 1)

	total, err := r.Count(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, int64(42), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepo_ListPending_TriageOrder(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	high := sampleComplaint()
	high.Severity = model.SeverityHigh
	low := sampleComplaint()
	low.Severity = model.SeverityLow

	rows := complaintRow(high)
	rows.AddRow(
		low.ID, low.ReferenceNumber, &low.CitizenID, low.CitizenName, low.CitizenEmail, low.CitizenPhone,
		low.CrimeType, low.Description, low.Location, low.Latitude, low.Longitude, low.IncidentDate,
		string(low.Severity), low.SeverityScore, "Pending", time.Now(), (*uuid.UUID)(nil),
	)

	mock.ExpectQuery(`WHERE status = 'Pending'\s+ORDER BY CASE severity WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END, date_filed ASC`).
		WillReturnRows(rows)

	items, err := r.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, model.SeverityHigh, items[0].Severity)
	require.Equal(t, model.SeverityLow, items[1].Severity)
}

func TestComplaintRepo_Statistics_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewComplaintRepo(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM complaints`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("Pending", int64(3)).
			AddRow("Resolved", int64(2)))
	mock.ExpectQuery(`SELECT severity, COUNT\(\*\) FROM complaints`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"severity", "count"}).
			AddRow("High", int64(1)).
			AddRow("Medium", int64(4)))
	mock.ExpectQuery(`SELECT crime_type, COUNT\(\*\) FROM complaints`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"crime_type", "count"}).
			AddRow("Theft", int64(5)))
	mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE severity = 'High'\)`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"day", "total", "high", "medium", "low"}).
			AddRow(day, int64(5), int64(1), int64(4), int64(0)))
	mock.ExpectQuery(`SELECT crime_type, COUNT\(\*\), AVG\(days\)`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"crime_type", "resolved", "avg_days"}).
			AddRow("Theft", int64(2), 3.5))

	stats, err := r.Statistics(context.Background(), from, to)
	require.NoError(t, err)
	require.Equal(t, int64(5), stats.Total)
	require.Equal(t, int64(3), stats.ByStatus[model.StatusPending])
	require.Equal(t, int64(4), stats.BySeverity[model.SeverityMedium])
	require.Equal(t, int64(5), stats.ByCategory["Theft"])
	require.Len(t, stats.Daily, 1)
	require.Equal(t, int64(1), stats.Daily[0].High)
	require.Len(t, stats.Resolution, 1)
	require.Equal(t, 3.5, stats.Resolution[0].AvgDays)
	require.NoError(t, mock.ExpectationsWereMet())
}
