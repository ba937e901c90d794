// Package severity implements the rule-based triage classifier for complaints.
package severity

import (
	"strings"

	"github.com/anilvs/casetrack/internal/model"
)

// Category sets checked before any keyword scan. A category match
// short-circuits classification.
var (
	highCategories   = []string{"murder", "rape", "kidnapping", "terrorism", "assault"}
	mediumCategories = []string{"theft", "fraud", "cybercrime", "harassment", "robbery"}
	lowCategories    = []string{"traffic", "noise", "public nuisance", "document"}
)

// Indicator words scanned in the free text, one set per tier.
var (
	highKeywords = []string{
		"murder", "kill", "death", "rape", "assault", "kidnap", "bomb", "terror",
		"weapon", "gun", "knife", "violence", "threat", "emergency", "urgent",
		"serious", "critical", "dangerous", "life", "injury", "blood", "attack",
	}
	mediumKeywords = []string{
		"theft", "robbery", "fraud", "cheat", "scam", "harassment", "abuse",
		"domestic", "cybercrime", "blackmail", "extortion", "vandalism",
		"property", "damage", "stolen", "missing", "lost",
	}
	lowKeywords = []string{
		"noise", "parking", "dispute", "argument", "complaint", "minor",
		"disturbance", "nuisance", "public", "traffic", "document",
	}
)

// Classify assigns a severity tier from the crime category and free text.
// It is pure and total: category membership wins, then keyword priority
// High > Medium > Low, then Medium as the fail-safe default so unclassifiable
// complaints are never silently deprioritized.
func Classify(category, text string) model.Severity {
	cat := strings.ToLower(strings.TrimSpace(category))

	switch {
	case contains(highCategories, cat):
		return model.SeverityHigh
	case contains(mediumCategories, cat):
		return model.SeverityMedium
	case contains(lowCategories, cat):
		return model.SeverityLow
	}

	lower := strings.ToLower(text)
	switch {
	case anyKeyword(lower, highKeywords):
		return model.SeverityHigh
	case anyKeyword(lower, mediumKeywords):
		return model.SeverityMedium
	case anyKeyword(lower, lowKeywords):
		return model.SeverityLow
	}
	return model.SeverityMedium
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func anyKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
