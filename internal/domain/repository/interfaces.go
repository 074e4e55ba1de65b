package repository

import (
	"context"
	"errors"

	"PriceCast/internal/domain/models"
)

// ErrNotFound is returned by ObjectStore.Get when no blob exists for a key.
var ErrNotFound = errors.New("object not found")

// ObjectStore persists opaque byte blobs under stable keys. Model artifacts
// and serialized batches go through here; the core never interprets
// store-specific metadata. No implicit retry: errors propagate to callers.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// RecordSink persists tabular pricing records. Append order is the only
// ordering guarantee the core relies on.
type RecordSink interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Append(ctx context.Context, records []models.PricingRecord) error
	ReadAll(ctx context.Context) ([]models.PricingRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits validated records to downstream consumers.
type Publisher interface {
	PublishBatch(ctx context.Context, records []models.PricingRecord) error
	Close() error
}

type Metrics interface {
	RecordGenerated(n int)
	RecordDropped(check string, n int)
	RecordPassRate(rate float64)
	RecordTrainingDuration(seconds float64)
	RecordModelR2(r2 float64)
	RecordPrediction(price float64)
	RecordError(kind string)
}
