package risk

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"PriceCast/internal/domain/models"
)

// ErrEmptyCatalog is returned when aggregating an empty risk catalog.
var ErrEmptyCatalog = errors.New("risk catalog is empty")

// Bands holds the severity classification floors. A fixed, documented policy
// table; scores below MediumFloor are "low", at or above CriticalFloor
// "critical".
type Bands struct {
	MediumFloor   float64
	HighFloor     float64
	CriticalFloor float64
}

// DefaultBands: low <6, medium <12, high <20, critical >=20.
func DefaultBands() Bands {
	return Bands{MediumFloor: 6, HighFloor: 12, CriticalFloor: 20}
}

// Severity classifies a likelihood-times-impact score into a band.
func (b Bands) Severity(score float64) string {
	switch {
	case score >= b.CriticalFloor:
		return "critical"
	case score >= b.HighFloor:
		return "high"
	case score >= b.MediumFloor:
		return "medium"
	default:
		return "low"
	}
}

// Aggregator scores a fixed risk catalog into category and overall indices.
type Aggregator struct {
	bands Bands
	now   func() time.Time
}

func NewAggregator(bands Bands) *Aggregator {
	if bands.MediumFloor <= 0 || bands.HighFloor <= bands.MediumFloor || bands.CriticalFloor <= bands.HighFloor {
		bands = DefaultBands()
	}
	return &Aggregator{bands: bands, now: time.Now}
}

// Aggregate ranks items descending by score, stable on declaration order for
// ties, and computes per-category and overall means. Overall score is always
// in [1,25] for a valid catalog.
func (a *Aggregator) Aggregate(risks []models.RiskItem) (models.RiskReport, error) {
	var report models.RiskReport
	if len(risks) == 0 {
		return report, ErrEmptyCatalog
	}

	ranked := make([]models.RankedRisk, 0, len(risks))
	catSum := make(map[string]float64)
	catCount := make(map[string]int)
	total := 0.0

	for _, r := range risks {
		score := r.Score()
		ranked = append(ranked, models.RankedRisk{
			RiskItem:   r,
			ScoreValue: score,
			Severity:   a.bands.Severity(float64(score)),
		})
		catSum[r.Category] += float64(score)
		catCount[r.Category]++
		total += float64(score)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreValue > ranked[j].ScoreValue
	})

	report.RankedItems = ranked
	report.OverallScore = total / float64(len(risks))
	report.PerCategory = make(map[string]float64, len(catSum))
	for cat, sum := range catSum {
		report.PerCategory[cat] = sum / float64(catCount[cat])
	}
	report.GeneratedAt = a.now()
	report.ReportID = fmt.Sprintf("RISK-%s", report.GeneratedAt.UTC().Format("20060102-150405"))
	return report, nil
}

// SeverityBand exposes the classification for callers outside Aggregate.
func (a *Aggregator) SeverityBand(score float64) string {
	return a.bands.Severity(score)
}

// LoadCatalog validates risk entries before any aggregation begins.
// Malformed entries reject the whole catalog.
func LoadCatalog(items []models.RiskItem) ([]models.RiskItem, error) {
	v := validator.New()
	for i, item := range items {
		if err := v.Struct(item); err != nil {
			return nil, fmt.Errorf("risk catalog item %d (%s): %w", i, item.Name, err)
		}
	}
	out := make([]models.RiskItem, len(items))
	copy(out, items)
	return out, nil
}
