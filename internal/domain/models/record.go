package models

import (
	"math"
	"time"
)

// PricingRecord is one observed pricing event. Records are immutable after
// creation; corrections produce a new record.
type PricingRecord struct {
	BasePrice        float64   `json:"base_price" validate:"gt=0"`
	Demand           int       `json:"demand" validate:"min=0"`
	CompetitionPrice float64   `json:"competition_price" validate:"gt=0"`
	TimeOfDay        int       `json:"time_of_day" validate:"min=0,max=23"`
	DayOfWeek        int       `json:"day_of_week" validate:"min=0,max=6"`
	Season           int       `json:"season" validate:"min=0,max=3"`
	// OptimalPrice is the training label; zero means unlabeled.
	OptimalPrice float64   `json:"optimal_price,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Labeled reports whether the record carries a usable training label.
func (r PricingRecord) Labeled() bool {
	return r.OptimalPrice > 0 && !math.IsInf(r.OptimalPrice, 0) && !math.IsNaN(r.OptimalPrice)
}

// MissingFields returns the names of required fields that are absent.
// Decoded partial records surface absence as NaN floats or a zero timestamp.
func (r PricingRecord) MissingFields() []string {
	var missing []string
	if math.IsNaN(r.BasePrice) {
		missing = append(missing, "base_price")
	}
	if math.IsNaN(r.CompetitionPrice) {
		missing = append(missing, "competition_price")
	}
	if r.Timestamp.IsZero() {
		missing = append(missing, "timestamp")
	}
	return missing
}

// Key returns the full field tuple as a comparable value, used for
// exact-duplicate detection.
func (r PricingRecord) Key() RecordKey {
	return RecordKey{
		BasePrice:        r.BasePrice,
		Demand:           r.Demand,
		CompetitionPrice: r.CompetitionPrice,
		TimeOfDay:        r.TimeOfDay,
		DayOfWeek:        r.DayOfWeek,
		Season:           r.Season,
		OptimalPrice:     r.OptimalPrice,
		TimestampNanos:   r.Timestamp.UnixNano(),
	}
}

// RecordKey is the comparable identity of a PricingRecord.
type RecordKey struct {
	BasePrice        float64
	Demand           int
	CompetitionPrice float64
	TimeOfDay        int
	DayOfWeek        int
	Season           int
	OptimalPrice     float64
	TimestampNanos   int64
}

// ValidatedBatch is an ordered record sequence that passed all quality
// checks. Never longer than its input.
type ValidatedBatch struct {
	Records []PricingRecord
}

func (b ValidatedBatch) Len() int { return len(b.Records) }
