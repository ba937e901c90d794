package severity

import (
	"testing"

	"github.com/anilvs/casetrack/internal/model"
)

func TestClassify_CategoryShortCircuit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category string
		text     string
		want     model.Severity
	}{
		{"Murder", "details pending", model.SeverityHigh},
		{"Theft", "phone stolen", model.SeverityMedium}, // category wins before keyword scan
		{"Traffic", "he threatened to kill me", model.SeverityLow},
		{"KIDNAPPING", "", model.SeverityHigh},
	}
	for _, tc := range cases {
		if got := Classify(tc.category, tc.text); got != tc.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tc.category, tc.text, got, tc.want)
		}
	}
}

func TestClassify_KeywordScan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category string
		text     string
		want     model.Severity
	}{
		{"Other", "he threatened to kill me", model.SeverityHigh},
		{"Other", "my wallet was stolen from the bus", model.SeverityMedium},
		{"Other", "constant noise from the neighbours at night", model.SeverityLow},
		// high keyword outranks medium and low ones in the same text
		{"Other", "stolen knife and noise", model.SeverityHigh},
		{"Other", "stolen bicycle, loud noise too", model.SeverityMedium},
	}
	for _, tc := range cases {
		if got := Classify(tc.category, tc.text); got != tc.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tc.category, tc.text, got, tc.want)
		}
	}
}

func TestClassify_DefaultMedium(t *testing.T) {
	t.Parallel()

	if got := Classify("Other", "something unusual happened"); got != model.SeverityMedium {
		t.Fatalf("unclassifiable text: got %v, want Medium", got)
	}
	if got := Classify("", ""); got != model.SeverityMedium {
		t.Fatalf("empty input: got %v, want Medium", got)
	}
}

func TestClassify_AlwaysValidTier(t *testing.T) {
	t.Parallel()

	inputs := []struct{ category, text string }{
		{"", ""},
		{"Corruption", "officials demanded money"},
		{"Missing Person", "my brother has been missing since Monday"},
		{"!!!", "\x00\xff"},
	}
	for _, in := range inputs {
		if got := Classify(in.category, in.text); !got.Valid() {
			t.Errorf("Classify(%q, %q) returned invalid tier %q", in.category, in.text, got)
		}
	}
}
