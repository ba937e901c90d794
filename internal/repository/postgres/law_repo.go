package postgres

import (
	"context"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/jackc/pgx/v5"
)

// LawRepo implements LawRepository using PostgreSQL. The catalog is seeded by
// migration and read-only at runtime.
type LawRepo struct{ db *DB }

// NewLawRepo constructs a law repository.
func NewLawRepo(db *DB) *LawRepo { return &LawRepo{db: db} }

const lawColumns = `id, title, description, category, punishment`

// List returns the whole catalog ordered by category then title.
func (r *LawRepo) List(ctx context.Context) ([]model.Law, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+lawColumns+` FROM laws ORDER BY category, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLaws(rows)
}

// Search matches query against title, description and category; a non-empty
// category narrows to that statute code.
func (r *LawRepo) Search(ctx context.Context, query, category string) ([]model.Law, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case query != "" && category != "":
		const q = `
SELECT ` + lawColumns + ` FROM laws
WHERE category = $1 AND (title ILIKE $2 OR description ILIKE $2 OR category ILIKE $2)
ORDER BY title`
		rows, err = r.db.Pool.Query(ctx, q, category, "%"+query+"%")
	case query != "":
		const q = `
SELECT ` + lawColumns + ` FROM laws
WHERE title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
ORDER BY category, title`
		rows, err = r.db.Pool.Query(ctx, q, "%"+query+"%")
	case category != "":
		rows, err = r.db.Pool.Query(ctx, `SELECT `+lawColumns+` FROM laws WHERE category = $1 ORDER BY title`, category)
	default:
		return r.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLaws(rows)
}

// ByTitles loads laws whose title is in titles.
func (r *LawRepo) ByTitles(ctx context.Context, titles []string) ([]model.Law, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	rows, err := r.db.Pool.Query(ctx, `SELECT `+lawColumns+` FROM laws WHERE title = ANY($1)`, titles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLaws(rows)
}

func collectLaws(rows pgx.Rows) ([]model.Law, error) {
	var out []model.Law
	for rows.Next() {
		var l model.Law
		if err := rows.Scan(&l.ID, &l.Title, &l.Descr, &l.Category, &l.Punishment); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
