package models

import "time"

// RiskItem is one entry of the immutable risk catalog.
// Score is likelihood times impact, range [1,25].
type RiskItem struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Likelihood int    `json:"likelihood" validate:"min=1,max=5"`
	Impact     int    `json:"impact" validate:"min=1,max=5"`
}

// Score returns likelihood x impact.
func (r RiskItem) Score() int { return r.Likelihood * r.Impact }

// RankedRisk is a catalog item with its computed score and severity band.
type RankedRisk struct {
	RiskItem
	ScoreValue int    `json:"score"`
	Severity   string `json:"severity"`
}

// RiskReport is the aggregation over a risk catalog.
type RiskReport struct {
	ReportID     string             `json:"report_id"`
	OverallScore float64            `json:"overall_score"`
	PerCategory  map[string]float64 `json:"per_category"`
	// RankedItems is sorted descending by score; ties keep declaration order.
	RankedItems []RankedRisk `json:"ranked_items"`
	GeneratedAt time.Time    `json:"generated_at"`
}
