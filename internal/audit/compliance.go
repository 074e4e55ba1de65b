package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"PriceCast/internal/domain/models"
)

// ErrEmptyChecklist is returned when scoring an empty catalog: the
// percentage is undefined. This is the only structural failure here.
var ErrEmptyChecklist = errors.New("compliance checklist is empty")

// Scorer aggregates a fixed checklist into a weighted compliance score.
// Warn items contribute a partial weight fraction; this models advisory
// findings that should dent the score without zeroing the item.
type Scorer struct {
	warnFraction float64
	now          func() time.Time
}

func NewScorer(warnFraction float64) *Scorer {
	if warnFraction <= 0 || warnFraction > 1 {
		warnFraction = 0.5
	}
	return &Scorer{warnFraction: warnFraction, now: time.Now}
}

// Score computes the weighted pass percentage over the checklist. It never
// fails for a normal checklist: failed items are enumerated in the report.
func (s *Scorer) Score(checklist []models.ComplianceCheckItem) (models.ComplianceReport, error) {
	var report models.ComplianceReport
	if len(checklist) == 0 {
		return report, ErrEmptyChecklist
	}

	totalWeight := 0.0
	earnedWeight := 0.0
	catTotal := make(map[string]float64)
	catEarned := make(map[string]float64)

	for _, item := range checklist {
		totalWeight += item.Weight
		catTotal[item.Category] += item.Weight

		switch item.Status {
		case models.CheckPass:
			report.PassedCount++
			earnedWeight += item.Weight
			catEarned[item.Category] += item.Weight
		case models.CheckWarn:
			report.WarningCount++
			earnedWeight += item.Weight * s.warnFraction
			catEarned[item.Category] += item.Weight * s.warnFraction
		default:
			report.FailedItems = append(report.FailedItems, item.Name)
		}
	}

	report.TotalChecks = len(checklist)
	report.ScorePct = 100 * earnedWeight / totalWeight
	report.PerCategory = make(map[string]float64, len(catTotal))
	for cat, total := range catTotal {
		report.PerCategory[cat] = 100 * catEarned[cat] / total
	}
	report.AuditedAt = s.now()
	report.AuditID = auditID(report.AuditedAt)
	return report, nil
}

func auditID(t time.Time) string {
	sum := sha256.Sum256([]byte(t.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:16]
}

// LoadCatalog validates checklist entries before any scoring begins.
// Malformed entries reject the whole catalog.
func LoadCatalog(items []models.ComplianceCheckItem) ([]models.ComplianceCheckItem, error) {
	v := validator.New()
	for i, item := range items {
		if err := v.Struct(item); err != nil {
			return nil, fmt.Errorf("compliance catalog item %d (%s): %w", i, item.Name, err)
		}
	}
	out := make([]models.ComplianceCheckItem, len(items))
	copy(out, items)
	return out, nil
}
