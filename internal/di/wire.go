//go:build wireinject
// +build wireinject

package di

import (
	"PriceCast/pkg/config"
	"PriceCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Core pipeline stages
		ProvideGenerator,
		ProvideValidator,
		ProvideTransformer,
		ProvideTrainer,
		ProvideModelService,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideRecordSink,
		ProvideObjectStore,
		ProvidePublisher,

		// Use cases
		ProvidePipeline,
		ProvidePredictor,

		// Posture reports
		ProvideComplianceScorer,
		ProvideChecklist,
		ProvideRiskAggregator,
		ProvideRiskCatalog,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
