package di

import (
	"context"
	"fmt"
	"time"

	"PriceCast/internal/audit"
	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	"PriceCast/internal/features"
	"PriceCast/internal/generator"
	"PriceCast/internal/handler/api"
	"PriceCast/internal/pricing"
	"PriceCast/internal/quality"
	internalrepo "PriceCast/internal/repository"
	"PriceCast/internal/risk"
	"PriceCast/internal/usecase"
	pkgch "PriceCast/pkg/clickhouse"
	"PriceCast/pkg/config"
	xhttp "PriceCast/pkg/http"
	pkgkafka "PriceCast/pkg/kafka"
	"PriceCast/pkg/logger"
	"PriceCast/pkg/metrics"
	"PriceCast/pkg/server"
)

// ProvideLogger creates the application logger. Production environments
// log JSON, everything else gets console output.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	return logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGenerator creates the synthetic record generator.
func ProvideGenerator(cfg *config.Config) *generator.Generator {
	return generator.New(cfg.Generator.NoiseSigma)
}

// ProvideValidator creates the data quality validator.
func ProvideValidator(cfg *config.Config) *quality.Validator {
	return quality.New(cfg.Quality.MissingWarnRate)
}

// ProvideTransformer creates the feature transformer.
func ProvideTransformer() *features.Transformer {
	return features.New()
}

// ProvideTrainer creates the pricing model trainer.
func ProvideTrainer(cfg *config.Config) *pricing.Trainer {
	return pricing.NewTrainer(pricing.TrainerConfig{
		Trees:     cfg.Model.Trees,
		MaxDepth:  cfg.Model.MaxDepth,
		MinLeaf:   cfg.Model.MinLeaf,
		EvalRatio: cfg.Model.EvalRatio,
		Seed:      cfg.Model.Seed,
		ClampLow:  cfg.Model.ClampLow,
		ClampHigh: cfg.Model.ClampHigh,
	}, features.FeatureOrder())
}

// ProvideModelService creates the current-model holder.
func ProvideModelService() *pricing.Service {
	return pricing.NewService()
}

// ProvideClickHouseClient creates a ClickHouse client when the sink is
// backed by ClickHouse, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Sink.Type != "clickhouse" {
		return nil, nil
	}

	ch := cfg.Sink.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(ch.UseHTTP),
		pkgch.WithAsyncInsert(ch.AsyncInsert, ch.WaitForAsync),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	table := ch.Database + "." + ch.Table
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + ch.Database,
		"CREATE TABLE IF NOT EXISTS " + table + " (" +
			"seq UInt64, ts DateTime, base_price Float64, demand Float64, competition_price Float64, " +
			"time_of_day Float64, day_of_week Float64, season Float64, optimal_price Float64" +
			") ENGINE=MergeTree ORDER BY seq",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideRecordSink creates the raw record sink per configuration.
func ProvideRecordSink(cfg *config.Config, chClient *pkgch.Client) repository.RecordSink {
	if cfg.Sink.Type == "clickhouse" && chClient != nil {
		return internalrepo.NewClickHouseRecordSink(chClient.DB(), cfg.Sink.ClickHouse.Database+"."+cfg.Sink.ClickHouse.Table)
	}
	return internalrepo.NewMemoryRecordSink()
}

// ProvideObjectStore creates the model artifact store per configuration.
func ProvideObjectStore(cfg *config.Config) repository.ObjectStore {
	if cfg.Store.Type == "redis" {
		return internalrepo.NewRedisObjectStore(internalrepo.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			Prefix:   cfg.Store.Redis.Prefix,
		})
	}
	return internalrepo.NewMemoryObjectStore()
}

// ProvideKafkaProducer creates a Kafka producer, nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the validated record publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return internalrepo.NopPublisher{}
	}
	return internalrepo.NewKafkaRecordPublisher(producer, cfg.Kafka.Topic)
}

// ProvidePipeline creates the training pipeline use case.
func ProvidePipeline(
	gen *generator.Generator,
	validator *quality.Validator,
	transformer *features.Transformer,
	trainer *pricing.Trainer,
	modelSvc *pricing.Service,
	sink repository.RecordSink,
	store repository.ObjectStore,
	publisher repository.Publisher,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Pipeline {
	return usecase.NewPipeline(gen, validator, transformer, trainer, modelSvc,
		sink, store, publisher, m, l, cfg.Model.ArtifactKey)
}

// ProvidePredictor creates the prediction use case.
func ProvidePredictor(transformer *features.Transformer, modelSvc *pricing.Service, m repository.Metrics) *usecase.Predictor {
	return usecase.NewPredictor(transformer, modelSvc, m)
}

// ProvideComplianceScorer creates the compliance scorer.
func ProvideComplianceScorer(cfg *config.Config) *audit.Scorer {
	return audit.NewScorer(cfg.Audit.WarnFraction)
}

// ProvideChecklist returns the built-in compliance checklist, validated
// before any scoring begins.
func ProvideChecklist() ([]models.ComplianceCheckItem, error) {
	return audit.LoadCatalog(audit.DefaultCatalog())
}

// ProvideRiskAggregator creates the risk aggregator with configured bands.
func ProvideRiskAggregator(cfg *config.Config) *risk.Aggregator {
	return risk.NewAggregator(risk.Bands{
		MediumFloor:   cfg.Risk.MediumFloor,
		HighFloor:     cfg.Risk.HighFloor,
		CriticalFloor: cfg.Risk.CriticalFloor,
	})
}

// ProvideRiskCatalog returns the built-in risk register, validated before
// any aggregation begins.
func ProvideRiskCatalog() ([]models.RiskItem, error) {
	return risk.LoadCatalog(risk.DefaultCatalog())
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	l *logger.Logger,
	pipeline *usecase.Pipeline,
	predictor *usecase.Predictor,
	scorer *audit.Scorer,
	checklist []models.ComplianceCheckItem,
	aggregator *risk.Aggregator,
	risks []models.RiskItem,
) xhttp.Handler {
	return api.NewPricingEchoHandler(l, pipeline, predictor, scorer, checklist, aggregator, risks)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	pipeline *usecase.Pipeline,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	publisher repository.Publisher,
	sink repository.RecordSink,
	store repository.ObjectStore,
) *server.App {
	return server.New(cfg, l, pipeline, handler, chClient, publisher, sink, store)
}
