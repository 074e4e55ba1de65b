package risk

import (
	"errors"
	"strings"
	"testing"

	"PriceCast/internal/domain/models"
)

func TestAggregateEmptyCatalog(t *testing.T) {
	a := NewAggregator(DefaultBands())
	if _, err := a.Aggregate(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestSeverityBands(t *testing.T) {
	a := NewAggregator(DefaultBands())
	cases := []struct {
		score float64
		want  string
	}{
		{1, "low"},
		{5.99, "low"},
		{6, "medium"},
		{11.99, "medium"},
		{12, "high"},
		{19.99, "high"},
		{20, "critical"},
		{25, "critical"},
	}
	for _, tc := range cases {
		if got := a.SeverityBand(tc.score); got != tc.want {
			t.Fatalf("severity(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAggregateOverallMean(t *testing.T) {
	a := NewAggregator(DefaultBands())
	items := []models.RiskItem{
		{Name: "worst", Category: "a", Likelihood: 5, Impact: 5}, // 25
		{Name: "best", Category: "b", Likelihood: 1, Impact: 1},  // 1
	}
	report, err := a.Aggregate(items)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if report.OverallScore != 13 {
		t.Fatalf("overall = %v, want 13", report.OverallScore)
	}
	if report.RankedItems[0].Name != "worst" || report.RankedItems[0].Severity != "critical" {
		t.Fatalf("top item %+v", report.RankedItems[0])
	}
	if report.RankedItems[1].Name != "best" || report.RankedItems[1].Severity != "low" {
		t.Fatalf("bottom item %+v", report.RankedItems[1])
	}
	if report.PerCategory["a"] != 25 || report.PerCategory["b"] != 1 {
		t.Fatalf("per-category %v", report.PerCategory)
	}
	if !strings.HasPrefix(report.ReportID, "RISK-") {
		t.Fatalf("report id %q", report.ReportID)
	}
}

func TestAggregateStableTies(t *testing.T) {
	a := NewAggregator(DefaultBands())
	items := []models.RiskItem{
		{Name: "first", Category: "a", Likelihood: 2, Impact: 3},
		{Name: "second", Category: "a", Likelihood: 3, Impact: 2},
		{Name: "third", Category: "a", Likelihood: 2, Impact: 3},
	}

	report, err := a.Aggregate(items)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if report.RankedItems[i].Name != want {
			t.Fatalf("tie order broken at %d: got %q, want %q", i, report.RankedItems[i].Name, want)
		}
	}
}

func TestAggregateDefaultCatalog(t *testing.T) {
	a := NewAggregator(DefaultBands())
	report, err := a.Aggregate(DefaultCatalog())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if report.OverallScore < 1 || report.OverallScore > 25 {
		t.Fatalf("overall %v outside [1,25]", report.OverallScore)
	}
	if len(report.RankedItems) != len(DefaultCatalog()) {
		t.Fatalf("ranking dropped items")
	}
	for i := 1; i < len(report.RankedItems); i++ {
		if report.RankedItems[i].ScoreValue > report.RankedItems[i-1].ScoreValue {
			t.Fatalf("ranking not descending at %d", i)
		}
	}
	for _, cat := range []string{"technical", "security", "business", "operational"} {
		if _, ok := report.PerCategory[cat]; !ok {
			t.Fatalf("missing category %q", cat)
		}
	}
}

func TestAggregatorRejectsInvalidBands(t *testing.T) {
	// Inverted floors fall back to the default policy.
	a := NewAggregator(Bands{MediumFloor: 10, HighFloor: 5, CriticalFloor: 2})
	if got := a.SeverityBand(25); got != "critical" {
		t.Fatalf("expected default bands fallback, got %q for 25", got)
	}
	if got := a.SeverityBand(1); got != "low" {
		t.Fatalf("expected default bands fallback, got %q for 1", got)
	}
}

func TestLoadCatalogRejectsOutOfRange(t *testing.T) {
	items := []models.RiskItem{
		{Name: "ok", Category: "a", Likelihood: 3, Impact: 3},
		{Name: "bad", Category: "a", Likelihood: 0, Impact: 3},
	}
	if _, err := LoadCatalog(items); err == nil {
		t.Fatalf("expected error for likelihood=0")
	}
}

func TestLoadCatalogDefaultIsValid(t *testing.T) {
	if _, err := LoadCatalog(DefaultCatalog()); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}
