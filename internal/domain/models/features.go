package models

// FeatureVector is the fixed-order numeric representation of one record.
// Ordering must match the transformer's FeatureOrder across training and
// inference; a missing feature at inference is an error, never a default.
type FeatureVector struct {
	Values []float64
	// Label is the training target; valid only when Labeled is true.
	Label   float64
	Labeled bool
}
