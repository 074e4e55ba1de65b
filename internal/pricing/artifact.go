package pricing

import (
	"context"
	"encoding/json"
	"fmt"

	"PriceCast/internal/domain/repository"
)

// MarshalModel encodes a trained model as a JSON artifact. The object store
// treats the result as an opaque blob.
func MarshalModel(m *TrainedModel) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal model: %w", err)
	}
	return b, nil
}

// UnmarshalModel decodes an artifact and checks its feature schema against
// the expected order. A disagreement is fatal, never a silent reorder.
func UnmarshalModel(data []byte, wantOrder []string) (*TrainedModel, error) {
	var m TrainedModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	if len(m.FeatureOrder) != len(wantOrder) {
		return nil, &FeatureSchemaMismatchError{Want: len(wantOrder), Got: len(m.FeatureOrder)}
	}
	for i := range wantOrder {
		if m.FeatureOrder[i] != wantOrder[i] {
			return nil, &FeatureSchemaMismatchError{Want: len(wantOrder), Got: len(m.FeatureOrder)}
		}
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("unmarshal model: artifact has no trees")
	}
	return &m, nil
}

// SaveModel persists a model artifact under key. No retry here: the store
// collaborator owns retry policy.
func SaveModel(ctx context.Context, store repository.ObjectStore, key string, m *TrainedModel) error {
	b, err := MarshalModel(m)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, key, b); err != nil {
		return fmt.Errorf("save model %q: %w", key, err)
	}
	return nil
}

// LoadModel fetches and decodes a model artifact, verifying its feature
// schema against wantOrder.
func LoadModel(ctx context.Context, store repository.ObjectStore, key string, wantOrder []string) (*TrainedModel, error) {
	b, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", key, err)
	}
	return UnmarshalModel(b, wantOrder)
}
