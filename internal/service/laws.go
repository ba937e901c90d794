package service

import (
	"context"
	"strings"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository"
)

// suggestionRule maps trigger keywords to a seeded law title. Rules are
// evaluated in order; that order is the only ranking applied.
type suggestionRule struct {
	keywords []string
	title    string
}

var suggestionRules = []suggestionRule{
	{[]string{"murder", "kill", "death"}, "BNS Section 103 - Murder"},
	{[]string{"theft", "steal", "robbery"}, "BNS Section 304 - Theft"},
	{[]string{"assault", "attack", "violence"}, "BNS Section 354 - Assault"},
	{[]string{"fraud", "cheat", "scam"}, "BNS Section 420 - Fraud"},
	{[]string{"threat", "intimidation", "blackmail"}, "BNS Section 506 - Intimidation"},
	{[]string{"kidnap", "abduct"}, "BNS Section 302 - Kidnapping"},
}

// LawService provides catalog search and the keyword-to-law matcher.
type LawService interface {
	// Suggest returns laws whose trigger keywords appear in text or category.
	// No match yields an empty slice.
	Suggest(ctx context.Context, text, category string) ([]model.Law, error)
	// Search queries the catalog by free text and optional statute code.
	Search(ctx context.Context, query, category string) ([]model.Law, error)
	// List returns the whole catalog.
	List(ctx context.Context) ([]model.Law, error)
}

type LawServiceImpl struct {
	repo repository.LawRepository
}

// NewLawService constructs LawService.
func NewLawService(repo repository.LawRepository) *LawServiceImpl {
	return &LawServiceImpl{repo: repo}
}

// Suggest scans the rule table against the lowercased text and category,
// then resolves matched titles against the catalog preserving rule order.
func (s *LawServiceImpl) Suggest(ctx context.Context, text, category string) ([]model.Law, error) {
	haystack := strings.ToLower(text) + " " + strings.ToLower(category)

	var titles []string
	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				titles = append(titles, rule.title)
				break
			}
		}
	}
	if len(titles) == 0 {
		return []model.Law{}, nil
	}

	laws, err := s.repo.ByTitles(ctx, titles)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]model.Law, len(laws))
	for _, l := range laws {
		byTitle[l.Title] = l
	}
	out := make([]model.Law, 0, len(titles))
	for _, t := range titles {
		if l, ok := byTitle[t]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

// Search queries the catalog.
func (s *LawServiceImpl) Search(ctx context.Context, query, category string) ([]model.Law, error) {
	return s.repo.Search(ctx, query, category)
}

// List returns the whole catalog.
func (s *LawServiceImpl) List(ctx context.Context) ([]model.Law, error) {
	return s.repo.List(ctx)
}
