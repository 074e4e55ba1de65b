package models

import "time"

// CheckStatus is the tri-state outcome of one compliance check.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// ComplianceCheckItem is one entry of the immutable compliance catalog.
// The catalog is defined at process start; scoring only aggregates over it.
type ComplianceCheckItem struct {
	Name        string      `json:"name" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Status      CheckStatus `json:"status" validate:"required,oneof=pass warn fail"`
	Weight      float64     `json:"weight" validate:"gt=0"`
	Description string      `json:"description,omitempty"`
}

// ComplianceReport is the weighted aggregation over a checklist.
type ComplianceReport struct {
	AuditID      string    `json:"audit_id"`
	ScorePct     float64   `json:"score_pct"`
	TotalChecks  int       `json:"total_checks"`
	PassedCount  int       `json:"passed_count"`
	WarningCount int       `json:"warning_count"`
	FailedItems  []string  `json:"failed_items"`
	// PerCategory maps category to its weighted score percentage.
	PerCategory map[string]float64 `json:"per_category"`
	AuditedAt   time.Time          `json:"audited_at"`
}
