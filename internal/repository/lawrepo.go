package repository

import (
	"context"

	"github.com/anilvs/casetrack/internal/model"
)

// LawRepository provides read access to the seeded legal-reference catalog.
type LawRepository interface {
	// List returns the whole catalog ordered by category then title.
	List(ctx context.Context) ([]model.Law, error)
	// Search matches query case-insensitively against title, description and
	// category; category, when set, is an exact filter.
	Search(ctx context.Context, query, category string) ([]model.Law, error)
	// ByTitles loads laws whose title is in titles. Order of the result is
	// unspecified; callers re-rank.
	ByTitles(ctx context.Context, titles []string) ([]model.Law, error)
}
