package pricing

import (
	"errors"
	"fmt"
)

// ErrModelNotLoaded is returned by prediction paths before any model has
// been trained or loaded.
var ErrModelNotLoaded = errors.New("pricing model not loaded")

// TrainingError signals an unlearnable or undersized training set. The
// caller must supply better data before retrying.
type TrainingError struct {
	Reason string
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training error: %s", e.Reason)
}

// FeatureSchemaMismatchError signals that a feature vector or a loaded
// artifact disagrees with the expected feature order. This is fatal; the
// model never reorders features silently.
type FeatureSchemaMismatchError struct {
	Want int
	Got  int
}

func (e *FeatureSchemaMismatchError) Error() string {
	return fmt.Sprintf("feature schema mismatch: want %d features, got %d", e.Want, e.Got)
}
