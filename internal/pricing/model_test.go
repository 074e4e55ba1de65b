package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/features"
	"PriceCast/internal/generator"
	internalrepo "PriceCast/internal/repository"
)

func trainVectors(t *testing.T, n int) []models.FeatureVector {
	t.Helper()
	records, err := generator.New(2.0).Generate(n, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	vectors, err := features.New().Transform(models.ValidatedBatch{Records: records})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return vectors
}

func testTrainer() *Trainer {
	// Smaller forest than the production default to keep the test fast;
	// accuracy is well above the threshold regardless.
	return NewTrainer(TrainerConfig{
		Trees:     25,
		MaxDepth:  10,
		MinLeaf:   5,
		EvalRatio: 0.2,
		Seed:      42,
		ClampLow:  0.3,
		ClampHigh: 3.0,
	}, features.FeatureOrder())
}

func TestTrainAndEvaluate(t *testing.T) {
	vectors := trainVectors(t, 3000)
	model, metrics, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if metrics.R2 < 0.85 {
		t.Fatalf("held-out R2 = %v, want >= 0.85", metrics.R2)
	}
	if metrics.RMSE <= 0 {
		t.Fatalf("rmse = %v, want > 0", metrics.RMSE)
	}
	if diff := metrics.MSE - metrics.RMSE*metrics.RMSE; math.Abs(diff) > 1e-9 {
		t.Fatalf("mse %v inconsistent with rmse %v", metrics.MSE, metrics.RMSE)
	}
	if metrics.TrainRows+metrics.EvalRows != len(vectors) {
		t.Fatalf("split rows %d+%d != %d", metrics.TrainRows, metrics.EvalRows, len(vectors))
	}
	if metrics.EvalRows != int(math.Round(float64(len(vectors))*0.2)) {
		t.Fatalf("eval rows = %d", metrics.EvalRows)
	}

	sum := 0.0
	for _, v := range metrics.Importance {
		if v < 0 {
			t.Fatalf("negative importance %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("importance sums to %v, want 1", sum)
	}
	if len(model.Trees) != 25 {
		t.Fatalf("expected 25 trees, got %d", len(model.Trees))
	}
}

func TestTrainDeterministicMetrics(t *testing.T) {
	vectors := trainVectors(t, 800)
	_, m1, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	_, m2, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if m1.R2 != m2.R2 || m1.RMSE != m2.RMSE {
		t.Fatalf("same seed gave different metrics: %v vs %v", m1, m2)
	}
}

func TestTrainRejectsTinySet(t *testing.T) {
	vectors := trainVectors(t, 3000)[:10]
	_, _, err := testTrainer().Train(vectors)
	var trainErr *TrainingError
	if !errors.As(err, &trainErr) {
		t.Fatalf("expected TrainingError for tiny set, got %v", err)
	}
}

func TestTrainRejectsZeroVariance(t *testing.T) {
	vectors := trainVectors(t, 100)
	for i := range vectors {
		vectors[i].Label = 5.0
	}
	_, _, err := testTrainer().Train(vectors)
	var trainErr *TrainingError
	if !errors.As(err, &trainErr) {
		t.Fatalf("expected TrainingError for constant labels, got %v", err)
	}
}

func TestTrainRejectsSchemaMismatch(t *testing.T) {
	vectors := trainVectors(t, 100)
	vectors[50].Values = vectors[50].Values[:4]
	_, _, err := testTrainer().Train(vectors)
	var mismatch *FeatureSchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected FeatureSchemaMismatchError, got %v", err)
	}
}

func TestPredictWithinClampBounds(t *testing.T) {
	vectors := trainVectors(t, 1500)
	model, _, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	for i, fv := range vectors[:200] {
		price, err := model.Predict(fv)
		if err != nil {
			t.Fatalf("predict %d: %v", i, err)
		}
		base := fv.Values[0]
		if price < 0.3*base-1e-9 || price > 3*base+1e-9 {
			t.Fatalf("prediction %v outside clamp for base %v", price, base)
		}
	}
}

func TestPredictClampsExtremeLeaves(t *testing.T) {
	model := &TrainedModel{
		FeatureOrder: features.FeatureOrder(),
		Trees: []regressionTree{
			{Nodes: []treeNode{{Feature: -1, Value: 100000}}},
		},
		ClampLow:  0.3,
		ClampHigh: 3.0,
	}
	fv := models.FeatureVector{Values: make([]float64, features.Count())}
	fv.Values[0] = 50

	price, err := model.Predict(fv)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if price != 150 {
		t.Fatalf("expected clamp to 3x base = 150, got %v", price)
	}

	model.Trees[0].Nodes[0].Value = 0.001
	price, err = model.Predict(fv)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if price != 15 {
		t.Fatalf("expected clamp to 0.3x base = 15, got %v", price)
	}
}

func TestPredictSchemaMismatch(t *testing.T) {
	vectors := trainVectors(t, 400)
	model, _, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	_, err = model.Predict(models.FeatureVector{Values: []float64{1, 2, 3}})
	var mismatch *FeatureSchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected FeatureSchemaMismatchError, got %v", err)
	}
	if mismatch.Want != features.Count() || mismatch.Got != 3 {
		t.Fatalf("mismatch detail want=%d got=%d", mismatch.Want, mismatch.Got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	vectors := trainVectors(t, 800)
	model, _, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	store := internalrepo.NewMemoryObjectStore()
	ctx := context.Background()
	if err := SaveModel(ctx, store, "models/test.json", model); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadModel(ctx, store, "models/test.json", features.FeatureOrder())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for i, fv := range vectors[:100] {
		want, err := model.Predict(fv)
		if err != nil {
			t.Fatalf("predict original %d: %v", i, err)
		}
		got, err := loaded.Predict(fv)
		if err != nil {
			t.Fatalf("predict loaded %d: %v", i, err)
		}
		if math.Abs(want-got) > 1e-6 {
			t.Fatalf("round trip drift at %d: %v vs %v", i, want, got)
		}
	}
}

func TestLoadModelFeatureOrderMismatch(t *testing.T) {
	vectors := trainVectors(t, 400)
	model, _, err := testTrainer().Train(vectors)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	b, err := MarshalModel(model)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	reordered := features.FeatureOrder()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	_, err = UnmarshalModel(b, reordered)
	var mismatch *FeatureSchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected FeatureSchemaMismatchError on reordered schema, got %v", err)
	}
}

func TestLoadModelMissing(t *testing.T) {
	store := internalrepo.NewMemoryObjectStore()
	_, err := LoadModel(context.Background(), store, "models/none.json", features.FeatureOrder())
	if err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}
