package models

import "time"

// QualityReport carries per-check counters for one validation pass.
// Computed once per batch, immutable afterwards.
type QualityReport struct {
	TotalRecords     int       `json:"total_records"`
	MissingDropped   int       `json:"missing_dropped"`
	RangeDropped     int       `json:"range_dropped"`
	DuplicateDropped int       `json:"duplicate_dropped"`
	Accepted         int       `json:"accepted"`
	PassRate         float64   `json:"pass_rate"`
	MissingRate      float64   `json:"missing_rate"`
	DuplicateRate    float64   `json:"duplicate_rate"`
	// Degraded is set when the missing rate crosses the configured warning
	// threshold. The caller decides whether to proceed; it is never an error.
	Degraded    bool      `json:"degraded"`
	ValidatedAt time.Time `json:"validated_at"`
}

// PriceStats summarizes the label/price distribution of a batch.
type PriceStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}
