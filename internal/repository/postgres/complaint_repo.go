package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anilvs/casetrack/internal/errs"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// ComplaintRepo implements ComplaintRepository using PostgreSQL.
type ComplaintRepo struct{ db *DB }

// NewComplaintRepo constructs a complaint repository.
func NewComplaintRepo(db *DB) *ComplaintRepo { return &ComplaintRepo{db: db} }

const complaintColumns = `id, reference_number, citizen_id, citizen_name, citizen_email, citizen_phone,
crime_type, description, location, latitude, longitude, incident_date,
severity, severity_score, status, date_filed, assigned_officer_id`

// Create inserts a new complaint row. date_filed and the initial Pending
// status are assigned by the database.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	const q = `
INSERT INTO complaints (id, reference_number, citizen_id, citizen_name, citizen_email, citizen_phone,
	crime_type, description, location, latitude, longitude, incident_date, severity, severity_score)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING status, date_filed`
	row := r.db.Pool.QueryRow(ctx, q,
		c.ID, c.ReferenceNumber, uuidPtr(c.CitizenID), c.CitizenName, c.CitizenEmail, c.CitizenPhone,
		c.CrimeType, c.Description, c.Location, c.Latitude, c.Longitude, c.IncidentDate,
		string(c.Severity), c.SeverityScore)
	var status string
	if err := row.Scan(&status, &c.DateFiled); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	c.Status = model.Status(status)
	return nil
}

// GetByID selects a complaint by internal ID.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	return r.getBy(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id=$1`, id)
}

// GetByReference selects a complaint by its external reference number.
func (r *ComplaintRepo) GetByReference(ctx context.Context, ref string) (*model.Complaint, error) {
	return r.getBy(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE reference_number=$1`, ref)
}

func (r *ComplaintRepo) getBy(ctx context.Context, q string, arg any) (*model.Complaint, error) {
	c, err := scanComplaint(r.db.Pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// buildWhere renders the conjunctive filter into a WHERE clause with
// positional args. Search and Count share it so the paged result set and the
// total always reflect the same predicate.
func buildWhere(f repository.SearchFilter) (string, []any) {
	var conds []string
	var args []any
	bind := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if f.Query != "" {
		n := bind("%" + f.Query + "%")
		conds = append(conds, fmt.Sprintf(
			`(reference_number ILIKE $%d OR crime_type ILIKE $%d OR location ILIKE $%d OR description ILIKE $%d OR citizen_name ILIKE $%d)`,
			n, n, n, n, n))
	}
	if f.Severity != "" {
		conds = append(conds, fmt.Sprintf(`severity = $%d`, bind(string(f.Severity))))
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf(`status = $%d`, bind(string(f.Status))))
	}
	if f.CrimeType != "" {
		conds = append(conds, fmt.Sprintf(`crime_type = $%d`, bind(f.CrimeType)))
	}
	if f.Location != "" {
		conds = append(conds, fmt.Sprintf(`location ILIKE $%d`, bind("%"+f.Location+"%")))
	}
	if f.FiledFrom != nil {
		conds = append(conds, fmt.Sprintf(`date_filed >= $%d`, bind(*f.FiledFrom)))
	}
	if f.FiledTo != nil {
		conds = append(conds, fmt.Sprintf(`date_filed <= $%d`, bind(*f.FiledTo)))
	}
	if f.CitizenID != uuid.Nil {
		conds = append(conds, fmt.Sprintf(`citizen_id = $%d`, bind(f.CitizenID)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Search returns complaints matching the filter ordered by filing time descending.
func (r *ComplaintRepo) Search(ctx context.Context, f repository.SearchFilter) ([]model.Complaint, error) {
	where, args := buildWhere(f)
	q := `SELECT ` + complaintColumns + ` FROM complaints` + where + ` ORDER BY date_filed DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
		if f.Offset > 0 {
			args = append(args, f.Offset)
			q += fmt.Sprintf(` OFFSET $%d`, len(args))
		}
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComplaints(rows)
}

// Count returns the number of complaints matching the same predicate as Search.
func (r *ComplaintRepo) Count(ctx context.Context, f repository.SearchFilter) (int64, error) {
	where, args := buildWhere(f)
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints`+where, args...).Scan(&n)
	return n, err
}

// ListPending returns the triage queue: most severe first, oldest first within a tier.
func (r *ComplaintRepo) ListPending(ctx context.Context) ([]model.Complaint, error) {
	const q = `
SELECT ` + complaintColumns + `
FROM complaints
WHERE status = 'Pending'
ORDER BY CASE severity WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END, date_filed ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComplaints(rows)
}

// Statistics computes the dashboard rollups over the inclusive filing range.
func (r *ComplaintRepo) Statistics(ctx context.Context, from, to time.Time) (*repository.Statistics, error) {
	stats := &repository.Statistics{
		ByStatus:   make(map[model.Status]int64),
		BySeverity: make(map[model.Severity]int64),
		ByCategory: make(map[string]int64),
	}

	const byStatus = `
SELECT status, COUNT(*) FROM complaints
WHERE date_filed >= $1 AND date_filed <= $2
GROUP BY status`
	rows, err := r.db.Pool.Query(ctx, byStatus, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s string
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByStatus[model.Status(s)] = n
		stats.Total += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const bySeverity = `
SELECT severity, COUNT(*) FROM complaints
WHERE date_filed >= $1 AND date_filed <= $2
GROUP BY severity`
	rows, err = r.db.Pool.Query(ctx, bySeverity, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s string
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			rows.Close()
			return nil, err
		}
		stats.BySeverity[model.Severity(s)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const byCategory = `
SELECT crime_type, COUNT(*) FROM complaints
WHERE date_filed >= $1 AND date_filed <= $2
GROUP BY crime_type`
	rows, err = r.db.Pool.Query(ctx, byCategory, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ct string
		var n int64
		if err := rows.Scan(&ct, &n); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByCategory[ct] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const daily = `
SELECT date_filed::date AS day,
	COUNT(*),
	COUNT(*) FILTER (WHERE severity = 'High'),
	COUNT(*) FILTER (WHERE severity = 'Medium'),
	COUNT(*) FILTER (WHERE severity = 'Low')
FROM complaints
WHERE date_filed >= $1 AND date_filed <= $2
GROUP BY day
ORDER BY day`
	rows, err = r.db.Pool.Query(ctx, daily, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var d repository.DailyCount
		if err := rows.Scan(&d.Date, &d.Total, &d.High, &d.Medium, &d.Low); err != nil {
			rows.Close()
			return nil, err
		}
		stats.Daily = append(stats.Daily, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Resolution time: filing timestamp to the latest 'Resolved' audit row per
	// complaint. MAX collapses repeated resolution entries so a complaint is
	// counted once.
	const resolution = `
SELECT crime_type, COUNT(*), AVG(days)
FROM (
	SELECT c.crime_type,
		EXTRACT(EPOCH FROM (MAX(cu.created_at) - c.date_filed)) / 86400.0 AS days
	FROM complaints c
	JOIN cases cs ON cs.complaint_id = c.id
	JOIN case_updates cu ON cu.case_id = cs.id AND cu.status = 'Resolved'
	WHERE c.status = 'Resolved' AND c.date_filed >= $1 AND c.date_filed <= $2
	GROUP BY c.id, c.crime_type, c.date_filed
) resolved
GROUP BY crime_type
ORDER BY crime_type`
	rows, err = r.db.Pool.Query(ctx, resolution, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var cr repository.CategoryResolution
		if err := rows.Scan(&cr.CrimeType, &cr.Resolved, &cr.AvgDays); err != nil {
			rows.Close()
			return nil, err
		}
		stats.Resolution = append(stats.Resolution, cr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func collectComplaints(rows pgx.Rows) ([]model.Complaint, error) {
	var out []model.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanComplaint(row pgx.Row) (*model.Complaint, error) {
	var (
		c        model.Complaint
		citizen  *uuid.UUID
		officer  *uuid.UUID
		severity string
		status   string
	)
	err := row.Scan(&c.ID, &c.ReferenceNumber, &citizen, &c.CitizenName, &c.CitizenEmail, &c.CitizenPhone,
		&c.CrimeType, &c.Description, &c.Location, &c.Latitude, &c.Longitude, &c.IncidentDate,
		&severity, &c.SeverityScore, &status, &c.DateFiled, &officer)
	if err != nil {
		return nil, err
	}
	c.CitizenID = deref(citizen)
	c.AssignedOfficerID = deref(officer)
	c.Severity = model.Severity(severity)
	c.Status = model.Status(status)
	return &c, nil
}
