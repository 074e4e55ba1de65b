package usecase

import (
	"context"
	"errors"
	"testing"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/features"
	"PriceCast/internal/generator"
	"PriceCast/internal/pricing"
	"PriceCast/internal/quality"
	internalrepo "PriceCast/internal/repository"
	applogger "PriceCast/pkg/logger"
)

// nopMetrics satisfies the metrics collaborator without touching the global
// Prometheus registry.
type nopMetrics struct{}

func (nopMetrics) RecordGenerated(int)            {}
func (nopMetrics) RecordDropped(string, int)      {}
func (nopMetrics) RecordPassRate(float64)         {}
func (nopMetrics) RecordTrainingDuration(float64) {}
func (nopMetrics) RecordModelR2(float64)          {}
func (nopMetrics) RecordPrediction(float64)       {}
func (nopMetrics) RecordError(string)             {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestPipeline(t *testing.T) (*Pipeline, *pricing.Service, *internalrepo.MemoryRecordSink, *internalrepo.MemoryObjectStore) {
	t.Helper()

	sink := internalrepo.NewMemoryRecordSink()
	store := internalrepo.NewMemoryObjectStore()
	modelSvc := pricing.NewService()
	trainer := pricing.NewTrainer(pricing.TrainerConfig{
		Trees:     20,
		MaxDepth:  10,
		MinLeaf:   5,
		EvalRatio: 0.2,
		Seed:      42,
		ClampLow:  0.3,
		ClampHigh: 3.0,
	}, features.FeatureOrder())

	p := NewPipeline(
		generator.New(2.0),
		quality.New(0.05),
		features.New(),
		trainer,
		modelSvc,
		sink,
		store,
		internalrepo.NopPublisher{},
		nopMetrics{},
		testLogger(t),
		"models/test.json",
	)
	return p, modelSvc, sink, store
}

func TestPipelineRunEndToEnd(t *testing.T) {
	p, modelSvc, sink, _ := newTestPipeline(t)
	ctx := context.Background()

	report, err := p.Run(ctx, 1500, 42)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Generated != 1500 {
		t.Fatalf("generated = %d", report.Generated)
	}
	// Generated batches are clean: every record survives validation.
	if report.Quality.Accepted != 1500 || report.Quality.PassRate != 1.0 {
		t.Fatalf("quality report %+v", report.Quality)
	}
	if report.Features != 1500 {
		t.Fatalf("features = %d", report.Features)
	}
	if report.Metrics.R2 < 0.85 {
		t.Fatalf("r2 = %v, want >= 0.85", report.Metrics.R2)
	}
	if report.ArtifactID != "models/test.json" {
		t.Fatalf("artifact id %q", report.ArtifactID)
	}
	if report.Prices.Count != 1500 || report.Prices.Min <= 0 {
		t.Fatalf("price stats %+v", report.Prices)
	}

	// Raw records landed in the sink before validation.
	raw, err := sink.ReadAll(ctx)
	if err != nil {
		t.Fatalf("sink read: %v", err)
	}
	if len(raw) != 1500 {
		t.Fatalf("sink holds %d records", len(raw))
	}

	// The trained model is installed and serves predictions.
	if _, err := modelSvc.Current(); err != nil {
		t.Fatalf("model not installed: %v", err)
	}
}

func TestPipelineLastReport(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)

	if p.LastReport() != nil {
		t.Fatalf("expected nil report before first run")
	}
	report, err := p.Run(context.Background(), 800, 7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	last := p.LastReport()
	if last == nil || last.FinishedAt != report.FinishedAt {
		t.Fatalf("last report not stored")
	}
}

func TestPipelineRestoreAfterRun(t *testing.T) {
	p, modelSvc, _, store := newTestPipeline(t)
	ctx := context.Background()

	if _, err := p.Run(ctx, 800, 42); err != nil {
		t.Fatalf("run: %v", err)
	}
	trained, err := modelSvc.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	// A fresh pipeline sharing the store restores the persisted artifact.
	modelSvc2 := pricing.NewService()
	p2 := NewPipeline(
		generator.New(2.0),
		quality.New(0.05),
		features.New(),
		pricing.NewTrainer(pricing.TrainerConfig{Trees: 20, Seed: 42}, features.FeatureOrder()),
		modelSvc2,
		internalrepo.NewMemoryRecordSink(),
		store,
		internalrepo.NopPublisher{},
		nopMetrics{},
		testLogger(t),
		"models/test.json",
	)
	if err := p2.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored, err := modelSvc2.Current()
	if err != nil {
		t.Fatalf("current after restore: %v", err)
	}
	if len(restored.Trees) != len(trained.Trees) {
		t.Fatalf("restored %d trees, trained %d", len(restored.Trees), len(trained.Trees))
	}
}

func TestPipelineRestoreMissingArtifact(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)
	err := p.Restore(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestPipelineRejectsBadCount(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)
	if _, err := p.Run(context.Background(), 0, 42); err == nil {
		t.Fatalf("expected error for n=0")
	}
}

func TestPredictorAgainstPipelineModel(t *testing.T) {
	p, modelSvc, _, _ := newTestPipeline(t)
	if _, err := p.Run(context.Background(), 1000, 42); err != nil {
		t.Fatalf("run: %v", err)
	}

	pred := NewPredictor(features.New(), modelSvc, nopMetrics{})
	resp, err := pred.Predict(models.PredictRequest{
		BasePrice:        50,
		Demand:           400,
		CompetitionPrice: 52,
		TimeOfDay:        14,
		DayOfWeek:        2,
		Season:           1,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if resp.Price < 0.3*50 || resp.Price > 3*50 {
		t.Fatalf("price %v outside clamp bounds", resp.Price)
	}
	if resp.ModelTrained == "" {
		t.Fatalf("missing model trained timestamp")
	}
}

func TestPredictorWithoutModel(t *testing.T) {
	pred := NewPredictor(features.New(), pricing.NewService(), nopMetrics{})
	_, err := pred.Predict(models.PredictRequest{
		BasePrice:        50,
		Demand:           400,
		CompetitionPrice: 52,
		TimeOfDay:        14,
		DayOfWeek:        2,
		Season:           1,
	})
	if !errors.Is(err, pricing.ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}
