package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	"PriceCast/internal/features"
	"PriceCast/internal/generator"
	"PriceCast/internal/pricing"
	"PriceCast/internal/quality"
	applogger "PriceCast/pkg/logger"
)

// Pipeline runs the full training flow: generate, persist, validate,
// publish, transform, train, swap, archive. The model swap happens only
// after evaluation metrics are recorded.
type Pipeline struct {
	gen         *generator.Generator
	validator   *quality.Validator
	transformer *features.Transformer
	trainer     *pricing.Trainer
	modelSvc    *pricing.Service
	sink        repository.RecordSink
	store       repository.ObjectStore
	publisher   repository.Publisher
	metrics     repository.Metrics
	logger      *applogger.Logger
	artifactKey string
	last        atomic.Pointer[models.PipelineReport]
}

func NewPipeline(
	gen *generator.Generator,
	validator *quality.Validator,
	transformer *features.Transformer,
	trainer *pricing.Trainer,
	modelSvc *pricing.Service,
	sink repository.RecordSink,
	store repository.ObjectStore,
	publisher repository.Publisher,
	metrics repository.Metrics,
	logger *applogger.Logger,
	artifactKey string,
) *Pipeline {
	return &Pipeline{
		gen:         gen,
		validator:   validator,
		transformer: transformer,
		trainer:     trainer,
		modelSvc:    modelSvc,
		sink:        sink,
		store:       store,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		artifactKey: artifactKey,
	}
}

// Run executes one pipeline pass over n freshly generated records.
func (p *Pipeline) Run(ctx context.Context, n int, seed int64) (models.PipelineReport, error) {
	var report models.PipelineReport
	start := time.Now()

	records, err := p.gen.Generate(n, seed)
	if err != nil {
		return report, err
	}
	report.Generated = len(records)
	p.metrics.RecordGenerated(len(records))
	p.logger.Info("records generated", applogger.Int("count", len(records)), applogger.Int64("seed", seed))

	// Raw records go to the sink before validation; the sink keeps the
	// unfiltered history, corrections never mutate it.
	if err := p.sink.Append(ctx, records); err != nil {
		return report, fmt.Errorf("append raw records: %w", err)
	}

	batch, qreport, err := p.validator.Validate(records)
	if err != nil {
		p.metrics.RecordError("schema")
		return report, err
	}
	report.Quality = qreport
	p.metrics.RecordDropped("missing", qreport.MissingDropped)
	p.metrics.RecordDropped("range", qreport.RangeDropped)
	p.metrics.RecordDropped("duplicate", qreport.DuplicateDropped)
	p.metrics.RecordPassRate(qreport.PassRate)
	if qreport.Degraded {
		p.logger.Warn("batch degraded", applogger.Float64("missing_rate", qreport.MissingRate))
	}

	if err := p.publisher.PublishBatch(ctx, batch.Records); err != nil {
		// Publishing is a boundary concern; the pipeline proceeds.
		p.metrics.RecordError("publish")
		p.logger.Error("publish validated records", applogger.Error(err))
	}

	vectors, err := p.transformer.Transform(batch)
	if err != nil {
		p.metrics.RecordError("transform")
		return report, err
	}
	report.Features = len(vectors)
	report.Prices = PriceStatsOf(batch)

	model, metrics, err := p.trainer.Train(vectors)
	if err != nil {
		p.metrics.RecordError("training")
		return report, err
	}
	report.Metrics = metrics
	p.metrics.RecordTrainingDuration(time.Since(start).Seconds())
	p.metrics.RecordModelR2(metrics.R2)

	// Replace-on-success: the new model becomes visible only now.
	p.modelSvc.Swap(model)
	p.logger.Info("model trained",
		applogger.Float64("r2", metrics.R2),
		applogger.Float64("rmse", metrics.RMSE),
		applogger.Int("train_rows", metrics.TrainRows),
		applogger.Int("eval_rows", metrics.EvalRows),
	)

	if err := pricing.SaveModel(ctx, p.store, p.artifactKey, model); err != nil {
		p.metrics.RecordError("artifact")
		p.logger.Error("save model artifact", applogger.Error(err))
	} else {
		report.ArtifactID = p.artifactKey
	}

	report.Duration = time.Since(start)
	report.FinishedAt = time.Now()
	p.last.Store(&report)
	return report, nil
}

// LastReport returns the most recent pipeline report, or nil before the
// first completed run.
func (p *Pipeline) LastReport() *models.PipelineReport {
	return p.last.Load()
}

// Restore loads the persisted artifact and installs it as the current model.
// A feature-order disagreement with the transformer is fatal.
func (p *Pipeline) Restore(ctx context.Context) error {
	model, err := pricing.LoadModel(ctx, p.store, p.artifactKey, features.FeatureOrder())
	if err != nil {
		return err
	}
	p.modelSvc.Swap(model)
	p.metrics.RecordModelR2(model.Metrics.R2)
	p.logger.Info("model restored", applogger.String("key", p.artifactKey))
	return nil
}
