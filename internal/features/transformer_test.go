package features

import (
	"reflect"
	"testing"
	"time"

	"PriceCast/internal/domain/models"
)

func sample() models.PricingRecord {
	return models.PricingRecord{
		BasePrice:        60,
		Demand:           300,
		CompetitionPrice: 50,
		TimeOfDay:        22,
		DayOfWeek:        6,
		Season:           2,
		OptimalPrice:     58,
		Timestamp:        time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC),
	}
}

func TestFeatureOrderFixed(t *testing.T) {
	want := []string{
		"base_price", "demand", "competition_price", "time_of_day",
		"day_of_week", "season", "is_weekend", "demand_competition_ratio",
		"is_late_hour",
	}
	if got := FeatureOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("feature order = %v", got)
	}
	if Count() != len(want) {
		t.Fatalf("count = %d, want %d", Count(), len(want))
	}
}

func TestFeatureOrderCopyIsIsolated(t *testing.T) {
	a := FeatureOrder()
	a[0] = "mutated"
	if FeatureOrder()[0] != "base_price" {
		t.Fatalf("FeatureOrder exposed internal slice")
	}
}

func TestTransformRecordDerivedFeatures(t *testing.T) {
	tr := New()
	fv, err := tr.TransformRecord(sample())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(fv.Values) != Count() {
		t.Fatalf("expected %d values, got %d", Count(), len(fv.Values))
	}
	if fv.Values[6] != 1.0 {
		t.Fatalf("day_of_week=6 should be weekend, got %v", fv.Values[6])
	}
	if fv.Values[8] != 1.0 {
		t.Fatalf("time_of_day=22 should be late hour, got %v", fv.Values[8])
	}
	if fv.Values[7] != 300.0/50.0 {
		t.Fatalf("demand/competition ratio = %v, want 6", fv.Values[7])
	}
	if !fv.Labeled || fv.Label != 58 {
		t.Fatalf("expected label 58 carried over, got %v labeled=%v", fv.Label, fv.Labeled)
	}
}

func TestTransformRecordBoundaryFlags(t *testing.T) {
	tr := New()

	r := sample()
	r.DayOfWeek = 4
	r.TimeOfDay = 20
	fv, err := tr.TransformRecord(r)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if fv.Values[6] != 0 {
		t.Fatalf("day_of_week=4 is not weekend")
	}
	if fv.Values[8] != 0 {
		t.Fatalf("time_of_day=20 is not late hour")
	}

	r.DayOfWeek = 5
	r.TimeOfDay = 21
	fv, err = tr.TransformRecord(r)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if fv.Values[6] != 1 {
		t.Fatalf("day_of_week=5 is weekend")
	}
	if fv.Values[8] != 1 {
		t.Fatalf("time_of_day=21 is late hour")
	}
}

func TestTransformRecordDeterministic(t *testing.T) {
	tr := New()
	a, err := tr.TransformRecord(sample())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	b, err := tr.TransformRecord(sample())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same record produced different vectors")
	}
}

func TestTransformRecordPrecondition(t *testing.T) {
	tr := New()
	r := sample()
	r.CompetitionPrice = 0
	if _, err := tr.TransformRecord(r); err == nil {
		t.Fatalf("expected precondition error for competition_price=0")
	}
}

func TestTransformPreservesOrder(t *testing.T) {
	tr := New()
	batch := models.ValidatedBatch{}
	for i := 0; i < 5; i++ {
		r := sample()
		r.BasePrice = 10 + float64(i)
		batch.Records = append(batch.Records, r)
	}

	vectors, err := tr.Transform(batch)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(vectors) != 5 {
		t.Fatalf("expected 5 vectors, got %d", len(vectors))
	}
	for i, fv := range vectors {
		if fv.Values[0] != 10+float64(i) {
			t.Fatalf("vector %d out of order: base_price %v", i, fv.Values[0])
		}
	}
}

func TestTransformUnlabeledRecord(t *testing.T) {
	tr := New()
	r := sample()
	r.OptimalPrice = 0
	fv, err := tr.TransformRecord(r)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if fv.Labeled {
		t.Fatalf("unlabeled record produced labeled vector")
	}
}
