package features

import (
	"fmt"

	"PriceCast/internal/domain/models"
)

// featureOrder is the fixed ordinal layout of every FeatureVector. Training
// and inference must agree on it; artifacts record it for schema checks.
var featureOrder = []string{
	"base_price",
	"demand",
	"competition_price",
	"time_of_day",
	"day_of_week",
	"season",
	"is_weekend",
	"demand_competition_ratio",
	"is_late_hour",
}

// FeatureOrder returns a copy of the fixed feature ordering.
func FeatureOrder() []string {
	out := make([]string, len(featureOrder))
	copy(out, featureOrder)
	return out
}

// Count returns the number of features per vector.
func Count() int { return len(featureOrder) }

// Transformer derives model-ready features from validated records. It is a
// pure, order-preserving function of each input record.
type Transformer struct{}

func New() *Transformer { return &Transformer{} }

// Transform maps a validated batch to feature vectors, carrying labels where
// records have them.
func (t *Transformer) Transform(batch models.ValidatedBatch) ([]models.FeatureVector, error) {
	out := make([]models.FeatureVector, 0, batch.Len())
	for i, r := range batch.Records {
		fv, err := t.TransformRecord(r)
		if err != nil {
			return nil, fmt.Errorf("transform record %d: %w", i, err)
		}
		out = append(out, fv)
	}
	return out, nil
}

// TransformRecord derives one feature vector. The validator guarantees
// competition_price > 0 upstream; the precondition is still asserted here
// rather than special-cased silently.
func (t *Transformer) TransformRecord(r models.PricingRecord) (models.FeatureVector, error) {
	if r.CompetitionPrice <= 0 {
		return models.FeatureVector{}, fmt.Errorf("precondition violated: competition_price must be > 0, got %v", r.CompetitionPrice)
	}

	isWeekend := 0.0
	if r.DayOfWeek == 5 || r.DayOfWeek == 6 {
		isWeekend = 1.0
	}
	isLateHour := 0.0
	if r.TimeOfDay > 20 {
		isLateHour = 1.0
	}

	fv := models.FeatureVector{
		Values: []float64{
			r.BasePrice,
			float64(r.Demand),
			r.CompetitionPrice,
			float64(r.TimeOfDay),
			float64(r.DayOfWeek),
			float64(r.Season),
			isWeekend,
			float64(r.Demand) / r.CompetitionPrice,
			isLateHour,
		},
	}
	if r.Labeled() {
		fv.Label = r.OptimalPrice
		fv.Labeled = true
	}
	return fv, nil
}
